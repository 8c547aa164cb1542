package auth

import (
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
)

// Principal identifica quem executa uma operação. É montado pelo middleware
// a partir do usuário persistido e repassado explicitamente aos serviços.
type Principal struct {
	UserID        string
	Role          user.Role
	AssociationID string
	BlockID       string
}

// PrincipalFromUser monta o Principal a partir do usuário
func PrincipalFromUser(u *user.User) Principal {
	return Principal{
		UserID:        u.ID,
		Role:          u.Role,
		AssociationID: u.AssociationID,
		BlockID:       u.BlockID,
	}
}

// HasRole verifica se o papel do Principal está entre os informados
func (p Principal) HasRole(roles ...user.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
