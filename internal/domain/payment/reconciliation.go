package payment

import (
	"strings"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
)

var ErrInvalidPolicy = domain.Wrap(domain.ErrValidation, "política de pagamento inválida")

// Policy define se pagamentos parciais são aceitos
type Policy string

const (
	// PolicyFullSettlement exige que o valor pago seja exatamente o saldo devedor
	PolicyFullSettlement Policy = "FULL_SETTLEMENT"
	// PolicyPartial aceita pagamentos parciais até o saldo devedor
	PolicyPartial Policy = "PARTIAL"
)

// ParsePolicy valida uma política; vazio retorna FULL_SETTLEMENT
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PolicyFullSettlement:
		return PolicyFullSettlement, nil
	case PolicyPartial:
		return PolicyPartial, nil
	}
	return "", ErrInvalidPolicy
}

// Reconciler aplica um pagamento sobre uma cota segundo a política configurada
type Reconciler struct {
	policy Policy
}

// NewReconciler cria um Reconciler
func NewReconciler(policy Policy) *Reconciler {
	if policy == "" {
		policy = PolicyFullSettlement
	}
	return &Reconciler{policy: policy}
}

// Policy retorna a política em uso
func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Apply valida o pagamento e atualiza a cota em memória.
// A cota deve ter sido lida sob bloqueio pelo chamador.
func (r *Reconciler) Apply(ae *expense.ApartmentExpense, p *Payment, at time.Time) error {
	if err := domain.ValidateAmount(p.Amount); err != nil {
		return err
	}
	if ae.IsSettled() {
		return domain.ErrAlreadySettled
	}

	outstanding := ae.Outstanding()
	switch r.policy {
	case PolicyPartial:
		if p.Amount.GreaterThan(outstanding) {
			return &domain.AmountMismatchError{Expected: outstanding, Got: p.Amount}
		}
	default:
		if !p.Amount.Equal(outstanding) {
			return &domain.AmountMismatchError{Expected: outstanding, Got: p.Amount}
		}
	}

	ae.PaidAmount = ae.PaidAmount.Add(p.Amount)
	ae.UpdatedAt = at
	if ae.PaidAmount.GreaterThanOrEqual(ae.Amount) {
		ae.Status = expense.StatusPaid
		ae.PaidAt = &at
	}
	return nil
}
