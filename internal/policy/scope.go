// Package policy decide o que um Principal pode ver e alterar.
//
// Todo recurso é reduzido à sua posição na hierarquia (associação, bloco,
// proprietário). Administradores de associação alcançam tudo sob a sua
// associação; administradores de bloco, tudo sob o seu bloco; moradores leem
// o próprio bloco e só agem sobre os apartamentos de que são proprietários.
package policy

import (
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// Resource localiza um recurso na hierarquia
type Resource struct {
	AssociationID string
	BlockID       string
	OwnerID       string
	// Personal marca dados de um apartamento (cotas, pagamentos, leituras,
	// reparos) que moradores só veem quando são proprietários
	Personal bool
}

// Scope restringe uma listagem; campos vazios não filtram
type Scope struct {
	AssociationID string
	BlockID       string
	OwnerID       string
}

// CanView informa se o Principal pode ler o recurso
func CanView(p auth.Principal, r Resource) bool {
	if CanManage(p, r) {
		return true
	}
	switch p.Role {
	case user.RoleBlockAdmin:
		// O administrador de bloco enxerga os dados da associação a que o bloco pertence
		return r.BlockID == "" && p.AssociationID != "" && r.AssociationID == p.AssociationID
	case user.RoleTenant:
		if r.Personal {
			return r.OwnerID != "" && r.OwnerID == p.UserID
		}
		if r.BlockID == "" {
			return p.AssociationID != "" && r.AssociationID == p.AssociationID
		}
		return p.BlockID != "" && r.BlockID == p.BlockID
	}
	return false
}

// CanManage informa se o Principal administra o recurso
func CanManage(p auth.Principal, r Resource) bool {
	switch p.Role {
	case user.RoleAdminAssociation:
		return p.AssociationID != "" && r.AssociationID == p.AssociationID
	case user.RoleBlockAdmin:
		return p.BlockID != "" && r.BlockID == p.BlockID
	}
	return false
}

// CanActAsOwner informa se o Principal pode agir sobre um apartamento:
// administradores no escopo ou o morador proprietário
func CanActAsOwner(p auth.Principal, r Resource) bool {
	if CanManage(p, r) {
		return true
	}
	return p.Role == user.RoleTenant && r.OwnerID != "" && r.OwnerID == p.UserID
}

// ListScope retorna o filtro de listagem do Principal. ok é false quando o
// Principal ainda não está vinculado a nenhum escopo e a listagem deve vir vazia.
func ListScope(p auth.Principal, personal bool) (scope Scope, ok bool) {
	switch p.Role {
	case user.RoleAdminAssociation:
		return Scope{AssociationID: p.AssociationID}, p.AssociationID != ""
	case user.RoleBlockAdmin:
		return Scope{BlockID: p.BlockID}, p.BlockID != ""
	case user.RoleTenant:
		if personal {
			return Scope{OwnerID: p.UserID}, true
		}
		return Scope{BlockID: p.BlockID}, p.BlockID != ""
	}
	return Scope{}, false
}

// Require retorna domain.ErrForbidden quando allowed é false
func Require(allowed bool) error {
	if !allowed {
		return domain.ErrForbidden
	}
	return nil
}
