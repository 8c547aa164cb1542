package dto

import (
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/user"
)

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	AssociationID string    `json:"associationId,omitempty"`
	BlockID       string    `json:"blockId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InviteRequest representa o convite de um usuário para a associação
type InviteRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required"`
	BlockID   string `json:"blockId"`
}

// InviteResponse representa o usuário convidado e o token de aceite, que
// deve ser repassado ao convidado para concluir o cadastro
type InviteResponse struct {
	UserResponse
	InviteToken string `json:"inviteToken,omitempty"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          string(u.Role),
		Status:        string(u.Status),
		AssociationID: u.AssociationID,
		BlockID:       u.BlockID,
		CreatedAt:     u.CreatedAt,
	}
}

// ToUserResponses converte uma lista de usuários
func ToUserResponses(users []*user.User) []UserResponse {
	data := make([]UserResponse, len(users))
	for i, u := range users {
		data[i] = ToUserResponse(u)
	}
	return data
}
