package service

import (
	"context"

	"github.com/hugohenrick/erp-condominio/internal/domain/dashboard"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// DashboardService monta as estatísticas do painel
type DashboardService struct {
	base
	repo dashboard.Repository
}

// NewDashboardService cria uma nova instância de DashboardService
func NewDashboardService(repo dashboard.Repository, opts ...Option) *DashboardService {
	return &DashboardService{base: newBase(opts), repo: repo}
}

// Stats retorna as estatísticas do escopo do Principal: a associação, o
// bloco ou, para moradores, os apartamentos de que são proprietários
func (s *DashboardService) Stats(ctx context.Context, p auth.Principal) (dashboard.Stats, error) {
	scope, ok := policy.ListScope(p, p.Role == user.RoleTenant)
	if !ok {
		return dashboard.Build(dashboard.Counts{}), nil
	}
	counts, err := s.repo.Counts(ctx, dashboard.Scope{
		AssociationID: scope.AssociationID,
		BlockID:       scope.BlockID,
		OwnerID:       scope.OwnerID,
	})
	if err != nil {
		return dashboard.Stats{}, err
	}
	return dashboard.Build(counts), nil
}
