package service

import (
	"context"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/repair"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// RepairInput reúne os dados de um novo pedido de reparo
type RepairInput struct {
	ApartmentID string
	Description string
	Location    string
	Priority    string
}

// RepairUpdate reúne as alterações de um pedido; campos vazios são mantidos
type RepairUpdate struct {
	Description string
	Location    string
	Priority    string
	Status      string
}

// RepairQuery restringe a listagem de pedidos
type RepairQuery struct {
	BlockID     string
	ApartmentID string
	Status      string
}

// RepairService gerencia pedidos de reparo
type RepairService struct {
	base
	locator
	repairs repair.Repository
}

// NewRepairService cria uma nova instância de RepairService
func NewRepairService(blocks block.Repository, apartments apartment.Repository, repairs repair.Repository, opts ...Option) *RepairService {
	return &RepairService{
		base:    newBase(opts),
		locator: locator{blocks: blocks, apartments: apartments},
		repairs: repairs,
	}
}

// Create abre um pedido de reparo para um apartamento
func (s *RepairService) Create(ctx context.Context, p auth.Principal, in RepairInput) (*repair.Request, error) {
	a, res, err := s.apartment(ctx, in.ApartmentID, true)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanActAsOwner(p, res)); err != nil {
		return nil, err
	}

	r, err := repair.NewRequest(a.ID, a.BlockID, in.Description, in.Location, repair.Priority(in.Priority), p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.repairs.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("pedido de reparo aberto", "repair_id", r.ID, "apartment_id", a.ID)
	return s.repairs.FindByID(ctx, r.ID)
}

// Update altera um pedido. Administradores no escopo mudam status e
// prioridade; quem abriu o pedido edita os dados enquanto ele está PENDING.
func (s *RepairService) Update(ctx context.Context, p auth.Principal, id string, in RepairUpdate) (*repair.Request, error) {
	r, err := s.repairs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, res, err := s.apartment(ctx, r.ApartmentID, true)
	if err != nil {
		return nil, err
	}

	manager := policy.CanManage(p, res)
	author := p.Role == user.RoleTenant && r.TenantID == p.UserID
	if !manager && !author {
		return nil, domain.ErrForbidden
	}

	if in.Description != "" || in.Location != "" {
		if err := r.Edit(orDefault(in.Description, r.Description), orDefault(in.Location, r.Location), repair.Priority(orDefault(in.Priority, string(r.Priority)))); err != nil {
			return nil, err
		}
	} else if in.Priority != "" {
		if !manager && r.Status != repair.StatusPending {
			return nil, repair.ErrNotEditable
		}
		if err := r.SetPriority(repair.Priority(in.Priority)); err != nil {
			return nil, err
		}
	}

	if in.Status != "" {
		if !manager {
			return nil, domain.ErrForbidden
		}
		status, err := repair.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		if err := r.TransitionTo(status); err != nil {
			return nil, err
		}
	}

	if err := s.repairs.Update(ctx, r); err != nil {
		return nil, err
	}
	return s.repairs.FindByID(ctx, r.ID)
}

// List retorna os pedidos visíveis. Sem apartamento no filtro, moradores veem
// apenas os pedidos que abriram.
func (s *RepairService) List(ctx context.Context, p auth.Principal, q RepairQuery) ([]*repair.Request, error) {
	f := repair.Filter{BlockID: q.BlockID, ApartmentID: q.ApartmentID}
	if q.Status != "" {
		status, err := repair.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}

	if q.ApartmentID != "" {
		_, res, err := s.apartment(ctx, q.ApartmentID, true)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		return s.repairs.List(ctx, f)
	}

	scope, ok := policy.ListScope(p, false)
	if !ok {
		return []*repair.Request{}, nil
	}
	if q.BlockID != "" {
		_, res, err := s.block(ctx, q.BlockID)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
	}
	f.AssociationID = scope.AssociationID
	if f.BlockID == "" {
		f.BlockID = scope.BlockID
	}
	if p.Role == user.RoleTenant {
		f.TenantID = p.UserID
	}
	return s.repairs.List(ctx, f)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
