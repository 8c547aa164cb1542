package service

import (
	"context"

	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// BlockInput reúne os campos editáveis de um bloco
type BlockInput struct {
	Name    string
	Address string
}

// BlockService gerencia blocos
type BlockService struct {
	base
	locator
	associations association.Repository
}

// NewBlockService cria uma nova instância de BlockService
func NewBlockService(associations association.Repository, blocks block.Repository, opts ...Option) *BlockService {
	return &BlockService{
		base:         newBase(opts),
		locator:      locator{blocks: blocks},
		associations: associations,
	}
}

// Create cria um bloco na associação
func (s *BlockService) Create(ctx context.Context, p auth.Principal, associationID string, in BlockInput) (*block.Block, error) {
	if _, err := s.associations.FindByID(ctx, associationID); err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, policy.Resource{AssociationID: associationID})); err != nil {
		return nil, err
	}

	b, err := block.NewBlock(associationID, in.Name, in.Address)
	if err != nil {
		return nil, err
	}
	if err := s.blocks.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.blocks.FindByID(ctx, b.ID)
}

// Get busca um bloco visível para o Principal
func (s *BlockService) Get(ctx context.Context, p auth.Principal, id string) (*block.Block, error) {
	b, res, err := s.block(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanView(p, res)); err != nil {
		return nil, err
	}
	return b, nil
}

// List retorna os blocos visíveis; associationID opcional restringe a uma associação
func (s *BlockService) List(ctx context.Context, p auth.Principal, associationID string) ([]*block.Block, error) {
	scope, ok := policy.ListScope(p, false)
	if !ok || (scope.AssociationID != "" && associationID != "" && associationID != scope.AssociationID) {
		return []*block.Block{}, nil
	}
	f := block.Filter{AssociationID: scope.AssociationID, BlockID: scope.BlockID}
	if associationID != "" {
		f.AssociationID = associationID
	}
	return s.blocks.List(ctx, f)
}

// Update altera os dados de um bloco administrado pelo Principal
func (s *BlockService) Update(ctx context.Context, p auth.Principal, id string, in BlockInput) (*block.Block, error) {
	b, res, err := s.block(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}
	if err := b.Update(in.Name, in.Address); err != nil {
		return nil, err
	}
	if err := s.blocks.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.blocks.FindByID(ctx, b.ID)
}
