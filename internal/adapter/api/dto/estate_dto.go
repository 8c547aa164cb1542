package dto

import (
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/shopspring/decimal"
)

// AssociationRequest representa os dados de uma associação
type AssociationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// AssociationResponse representa uma associação com as contagens derivadas
type AssociationResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	BlocksCount     int       `json:"blocksCount"`
	ApartmentsCount int       `json:"apartmentsCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BlockRequest representa os dados de um bloco
type BlockRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// BlockResponse representa um bloco
type BlockResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	AssociationID   string    `json:"associationId"`
	AssociationName string    `json:"associationName"`
	ApartmentsCount int       `json:"apartmentsCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ApartmentRequest representa os dados de um apartamento
type ApartmentRequest struct {
	Number  string          `json:"number" binding:"required"`
	Floor   int             `json:"floor" binding:"min=0"`
	Area    decimal.Decimal `json:"area"`
	OwnerID string          `json:"ownerId"`
}

// ApartmentResponse representa um apartamento
type ApartmentResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Floor     int             `json:"floor"`
	Area      decimal.Decimal `json:"area"`
	BlockID   string          `json:"blockId"`
	BlockName string          `json:"blockName"`
	OwnerID   string          `json:"ownerId,omitempty"`
	OwnerName string          `json:"ownerName,omitempty"`
}

// ToAssociationResponse converte uma associação do domínio para DTO de resposta
func ToAssociationResponse(a *association.Association) AssociationResponse {
	return AssociationResponse{
		ID:              a.ID,
		Name:            a.Name,
		Address:         a.Address,
		Phone:           a.Phone,
		Email:           a.Email,
		BlocksCount:     a.BlocksCount,
		ApartmentsCount: a.ApartmentsCount,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAssociationResponses converte uma lista de associações
func ToAssociationResponses(list []*association.Association) []AssociationResponse {
	data := make([]AssociationResponse, len(list))
	for i, a := range list {
		data[i] = ToAssociationResponse(a)
	}
	return data
}

// ToBlockResponse converte um bloco do domínio para DTO de resposta
func ToBlockResponse(b *block.Block) BlockResponse {
	return BlockResponse{
		ID:              b.ID,
		Name:            b.Name,
		Address:         b.Address,
		AssociationID:   b.AssociationID,
		AssociationName: b.AssociationName,
		ApartmentsCount: b.ApartmentsCount,
		CreatedAt:       b.CreatedAt,
	}
}

// ToBlockResponses converte uma lista de blocos
func ToBlockResponses(list []*block.Block) []BlockResponse {
	data := make([]BlockResponse, len(list))
	for i, b := range list {
		data[i] = ToBlockResponse(b)
	}
	return data
}

// ToApartmentResponse converte um apartamento do domínio para DTO de resposta
func ToApartmentResponse(a *apartment.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ID:        a.ID,
		Number:    a.Number,
		Floor:     a.Floor,
		Area:      a.Area,
		BlockID:   a.BlockID,
		BlockName: a.BlockName,
		OwnerID:   a.OwnerID,
		OwnerName: a.OwnerName,
	}
}

// ToApartmentResponses converte uma lista de apartamentos
func ToApartmentResponses(list []*apartment.Apartment) []ApartmentResponse {
	data := make([]ApartmentResponse, len(list))
	for i, a := range list {
		data[i] = ToApartmentResponse(a)
	}
	return data
}
