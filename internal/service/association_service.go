package service

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// AssociationInput reúne os campos editáveis de uma associação
type AssociationInput struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// AssociationService gerencia associações
type AssociationService struct {
	base
	associations association.Repository
	users        user.Repository
}

// NewAssociationService cria uma nova instância de AssociationService
func NewAssociationService(associations association.Repository, users user.Repository, opts ...Option) *AssociationService {
	return &AssociationService{base: newBase(opts), associations: associations, users: users}
}

// Create cria uma associação. Só um administrador de associação ainda sem
// vínculo pode criar, e passa a administrar a associação criada.
func (s *AssociationService) Create(ctx context.Context, p auth.Principal, in AssociationInput) (*association.Association, error) {
	if p.Role != user.RoleAdminAssociation || p.AssociationID != "" {
		return nil, domain.ErrForbidden
	}

	a, err := association.NewAssociation(in.Name, in.Address, in.Phone, in.Email)
	if err != nil {
		return nil, err
	}
	if err := s.associations.Create(ctx, a); err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("falha ao vincular administrador: %w", err)
	}
	u.Scope(user.RoleAdminAssociation, a.ID, "")
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("falha ao vincular administrador: %w", err)
	}

	s.log.Info("associação criada", "association_id", a.ID, "admin_id", u.ID)
	return s.associations.FindByID(ctx, a.ID)
}

// Get busca uma associação visível para o Principal
func (s *AssociationService) Get(ctx context.Context, p auth.Principal, id string) (*association.Association, error) {
	a, err := s.associations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanView(p, policy.Resource{AssociationID: a.ID})); err != nil {
		return nil, err
	}
	return a, nil
}

// List retorna as associações do escopo do Principal
func (s *AssociationService) List(ctx context.Context, p auth.Principal) ([]*association.Association, error) {
	if p.AssociationID == "" {
		return []*association.Association{}, nil
	}
	return s.associations.List(ctx, []string{p.AssociationID})
}

// Update altera os dados de uma associação administrada pelo Principal
func (s *AssociationService) Update(ctx context.Context, p auth.Principal, id string, in AssociationInput) (*association.Association, error) {
	a, err := s.associations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, policy.Resource{AssociationID: a.ID})); err != nil {
		return nil, err
	}
	if err := a.Update(in.Name, in.Address, in.Phone, in.Email); err != nil {
		return nil, err
	}
	if err := s.associations.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.associations.FindByID(ctx, a.ID)
}
