package service

import (
	"context"

	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// AnnouncementInput reúne os dados de um anúncio
type AnnouncementInput struct {
	BlockID  string
	Title    string
	Content  string
	Priority string
}

// AnnouncementService publica avisos para os blocos
type AnnouncementService struct {
	base
	locator
	announcements announcement.Repository
}

// NewAnnouncementService cria uma nova instância de AnnouncementService
func NewAnnouncementService(blocks block.Repository, announcements announcement.Repository, opts ...Option) *AnnouncementService {
	return &AnnouncementService{
		base:          newBase(opts),
		locator:       locator{blocks: blocks},
		announcements: announcements,
	}
}

// Create publica um anúncio em um bloco administrado pelo Principal
func (s *AnnouncementService) Create(ctx context.Context, p auth.Principal, in AnnouncementInput) (*announcement.Announcement, error) {
	_, res, err := s.block(ctx, in.BlockID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}

	a, err := announcement.NewAnnouncement(in.BlockID, in.Title, in.Content, announcement.Priority(in.Priority), p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.announcements.FindByID(ctx, a.ID)
}

// List retorna os anúncios visíveis; blockID opcional restringe a um bloco
func (s *AnnouncementService) List(ctx context.Context, p auth.Principal, blockID string) ([]*announcement.Announcement, error) {
	if blockID != "" {
		_, res, err := s.block(ctx, blockID)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		return s.announcements.List(ctx, announcement.Filter{BlockID: blockID})
	}

	scope, ok := policy.ListScope(p, false)
	if !ok {
		return []*announcement.Announcement{}, nil
	}
	return s.announcements.List(ctx, announcement.Filter{AssociationID: scope.AssociationID, BlockID: scope.BlockID})
}
