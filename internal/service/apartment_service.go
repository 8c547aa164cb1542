package service

import (
	"context"
	"errors"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/shopspring/decimal"
)

var (
	ErrOwnerNotFound   = domain.Wrap(domain.ErrValidation, "proprietário não encontrado")
	ErrOwnerOutOfScope = domain.Wrap(domain.ErrValidation, "proprietário pertence a outra associação")
)

// ApartmentInput reúne os campos editáveis de um apartamento
type ApartmentInput struct {
	Number  string
	Floor   int
	Area    decimal.Decimal
	OwnerID string
}

// ApartmentService gerencia apartamentos e o vínculo com proprietários
type ApartmentService struct {
	base
	locator
	users user.Repository
}

// NewApartmentService cria uma nova instância de ApartmentService
func NewApartmentService(blocks block.Repository, apartments apartment.Repository, users user.Repository, opts ...Option) *ApartmentService {
	return &ApartmentService{
		base:    newBase(opts),
		locator: locator{blocks: blocks, apartments: apartments},
		users:   users,
	}
}

// Create cria um apartamento no bloco
func (s *ApartmentService) Create(ctx context.Context, p auth.Principal, blockID string, in ApartmentInput) (*apartment.Apartment, error) {
	b, res, err := s.block(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}

	a, err := apartment.NewApartment(b.ID, in.Number, in.Floor, in.Area, in.OwnerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.checkOwner(ctx, b, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.apartments.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := s.scopeOwner(ctx, b, owner); err != nil {
		return nil, err
	}
	return s.apartments.FindByID(ctx, a.ID)
}

// Get busca um apartamento visível para o Principal
func (s *ApartmentService) Get(ctx context.Context, p auth.Principal, id string) (*apartment.Apartment, error) {
	a, res, err := s.apartment(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanView(p, res)); err != nil {
		return nil, err
	}
	return a, nil
}

// List retorna os apartamentos visíveis; blockID opcional restringe a um bloco
func (s *ApartmentService) List(ctx context.Context, p auth.Principal, blockID string) ([]*apartment.Apartment, error) {
	if blockID != "" {
		_, res, err := s.block(ctx, blockID)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		return s.apartments.List(ctx, apartment.Filter{BlockID: blockID})
	}

	scope, ok := policy.ListScope(p, false)
	if !ok {
		return []*apartment.Apartment{}, nil
	}
	return s.apartments.List(ctx, apartment.Filter{AssociationID: scope.AssociationID, BlockID: scope.BlockID})
}

// Update altera os dados do apartamento, inclusive o proprietário
func (s *ApartmentService) Update(ctx context.Context, p auth.Principal, id string, in ApartmentInput) (*apartment.Apartment, error) {
	a, res, err := s.apartment(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}
	b, err := s.blocks.FindByID(ctx, a.BlockID)
	if err != nil {
		return nil, err
	}

	owner, err := s.checkOwner(ctx, b, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := a.Update(in.Number, in.Floor, in.Area, in.OwnerID); err != nil {
		return nil, err
	}
	if err := s.apartments.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := s.scopeOwner(ctx, b, owner); err != nil {
		return nil, err
	}
	return s.apartments.FindByID(ctx, a.ID)
}

func (s *ApartmentService) checkOwner(ctx context.Context, b *block.Block, ownerID string) (*user.User, error) {
	if ownerID == "" {
		return nil, nil
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner.AssociationID != "" && owner.AssociationID != b.AssociationID {
		return nil, ErrOwnerOutOfScope
	}
	return owner, nil
}

// scopeOwner vincula um morador ainda sem bloco ao bloco do apartamento
func (s *ApartmentService) scopeOwner(ctx context.Context, b *block.Block, owner *user.User) error {
	if owner == nil || owner.Role != user.RoleTenant || owner.BlockID != "" {
		return nil
	}
	owner.Scope(user.RoleTenant, b.AssociationID, b.ID)
	if err := s.users.Update(ctx, owner); err != nil {
		return err
	}
	s.log.Info("morador vinculado ao bloco", "user_id", owner.ID, "block_id", b.ID)
	return nil
}
