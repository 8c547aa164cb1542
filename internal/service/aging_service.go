package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// ErrFutureSweep indica data de referência posterior ao relógio do servidor
var ErrFutureSweep = domain.Wrap(domain.ErrValidation, "a data de referência da varredura não pode estar no futuro")

// AgingService marca como vencidas as cotas pendentes após o vencimento
type AgingService struct {
	base
	expenses expense.Repository
}

// NewAgingService cria uma nova instância de AgingService
func NewAgingService(expenses expense.Repository, opts ...Option) *AgingService {
	return &AgingService{base: newBase(opts), expenses: expenses}
}

// SweepOverdue move PENDING -> OVERDUE as cotas vencidas antes de asOf em
// todas as associações (asOf zero usa o relógio do servidor) e retorna
// quantas mudaram. Repetir a varredura com o mesmo asOf não altera nada;
// cotas PAID nunca são tocadas. Usada pelo worker e pela CLI de operação.
func (s *AgingService) SweepOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}
	return s.sweep(ctx, "", asOf)
}

// SweepAssociation executa a varredura apenas na associação do Principal.
// asOf zero usa o relógio do servidor; datas futuras são recusadas.
func (s *AgingService) SweepAssociation(ctx context.Context, p auth.Principal, asOf time.Time) (int64, time.Time, error) {
	if err := policy.Require(p.Role == user.RoleAdminAssociation && p.AssociationID != ""); err != nil {
		return 0, time.Time{}, err
	}

	now := s.now()
	switch {
	case asOf.IsZero():
		asOf = now
	case asOf.After(now):
		return 0, time.Time{}, ErrFutureSweep
	}

	changed, err := s.sweep(ctx, p.AssociationID, asOf)
	if err != nil {
		return 0, time.Time{}, err
	}
	return changed, asOf, nil
}

func (s *AgingService) sweep(ctx context.Context, associationID string, asOf time.Time) (int64, error) {
	changed, err := s.expenses.MarkOverdue(ctx, associationID, asOf)
	if err != nil {
		return 0, fmt.Errorf("falha na varredura de vencidos: %w", err)
	}
	if changed > 0 {
		s.log.Info("cotas marcadas como vencidas", "count", changed, "as_of", asOf.Format(time.RFC3339),
			"association_id", associationID)
	}
	return changed, nil
}
