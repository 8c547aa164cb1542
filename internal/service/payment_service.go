package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/idempotency"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingAllocation = domain.Wrap(domain.ErrValidation, "informe apartmentExpenseId ou apartmentId e expenseId")
	ErrPaymentInProgress = domain.Wrap(domain.ErrConflict, "pagamento com a mesma chave de idempotência em andamento")
	ErrKeyReused         = domain.Wrap(domain.ErrConflict, "chave de idempotência já usada para outra cota")
)

// IdempotencyTTL é o tempo durante o qual uma chave concluída continua respondendo
const IdempotencyTTL = 24 * time.Hour

// PaymentInput reúne os dados de um pagamento. A cota é identificada pelo
// seu ID ou pelo par apartamento/despesa.
type PaymentInput struct {
	ApartmentExpenseID string
	ApartmentID        string
	ExpenseID          string
	Amount             decimal.Decimal
	Method             string
	Reference          string
	IdempotencyKey     string
}

// PaymentService registra pagamentos de cotas
type PaymentService struct {
	base
	locator
	expenses   expense.Repository
	payments   payment.Repository
	reconciler *payment.Reconciler
	keys       idempotency.Store
}

// NewPaymentService cria uma nova instância de PaymentService
func NewPaymentService(
	blocks block.Repository,
	apartments apartment.Repository,
	expenses expense.Repository,
	payments payment.Repository,
	reconciler *payment.Reconciler,
	keys idempotency.Store,
	opts ...Option,
) *PaymentService {
	if reconciler == nil {
		reconciler = payment.NewReconciler(payment.PolicyFullSettlement)
	}
	if keys == nil {
		keys = idempotency.NewMemoryStore()
	}
	return &PaymentService{
		base:       newBase(opts),
		locator:    locator{blocks: blocks, apartments: apartments},
		expenses:   expenses,
		payments:   payments,
		reconciler: reconciler,
		keys:       keys,
	}
}

// Pay aplica um pagamento sobre uma cota. Com chave de idempotência, uma
// repetição da mesma requisição devolve o pagamento original e replayed é true.
func (s *PaymentService) Pay(ctx context.Context, p auth.Principal, in PaymentInput) (created *payment.Payment, replayed bool, err error) {
	method, err := payment.ParseMethod(in.Method)
	if err != nil {
		return nil, false, err
	}
	ae, err := s.resolveAllocation(ctx, in)
	if err != nil {
		return nil, false, err
	}
	_, res, err := s.apartment(ctx, ae.ApartmentID, true)
	if err != nil {
		return nil, false, err
	}
	if err := policy.Require(policy.CanActAsOwner(p, res)); err != nil {
		return nil, false, err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		created, err = s.apply(ctx, p, ae.ID, in, method, "")
		return created, false, err
	}

	// Pagamento já gravado com esta chave
	if existing, err := s.payments.FindByIdempotencyKey(ctx, key); err == nil {
		return replay(existing, ae.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	id, err := s.keys.Reserve(ctx, key, IdempotencyTTL)
	if errors.Is(err, idempotency.ErrInProgress) {
		return nil, false, ErrPaymentInProgress
	}
	if err != nil {
		return nil, false, err
	}
	if id != "" {
		existing, err := s.payments.FindByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return replay(existing, ae.ID)
	}

	created, err = s.apply(ctx, p, ae.ID, in, method, key)
	if errors.Is(err, payment.ErrDuplicateKey) {
		// Outra instância gravou a mesma chave primeiro
		existing, findErr := s.payments.FindByIdempotencyKey(ctx, key)
		if findErr == nil {
			_ = s.keys.Release(ctx, key)
			return replay(existing, ae.ID)
		}
	}
	if err != nil {
		if releaseErr := s.keys.Release(ctx, key); releaseErr != nil {
			s.log.Warn("falha ao liberar chave de idempotência", "key", key, "error", releaseErr)
		}
		return nil, false, err
	}
	if err := s.keys.Complete(ctx, key, created.ID, IdempotencyTTL); err != nil {
		s.log.Warn("falha ao concluir chave de idempotência", "key", key, "error", err)
	}
	return created, false, nil
}

func replay(existing *payment.Payment, apartmentExpenseID string) (*payment.Payment, bool, error) {
	if existing.ApartmentExpenseID != apartmentExpenseID {
		return nil, false, ErrKeyReused
	}
	return existing, true, nil
}

func (s *PaymentService) apply(ctx context.Context, p auth.Principal, aeID string, in PaymentInput, method payment.Method, key string) (*payment.Payment, error) {
	created, err := s.payments.Apply(ctx, aeID, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
		at := s.now()
		pay := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, in.Amount, method, in.Reference, at)
		pay.IdempotencyKey = key
		pay.CreatedBy = p.UserID
		if err := s.reconciler.Apply(ae, pay, at); err != nil {
			return nil, err
		}
		return pay, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("pagamento registrado",
		"payment_id", created.ID, "apartment_expense_id", aeID, "amount", created.Amount.StringFixed(2), "method", created.Method)
	return created, nil
}

func (s *PaymentService) resolveAllocation(ctx context.Context, in PaymentInput) (*expense.ApartmentExpense, error) {
	switch {
	case in.ApartmentExpenseID != "":
		return s.expenses.FindAllocation(ctx, in.ApartmentExpenseID)
	case in.ApartmentID != "" && in.ExpenseID != "":
		return s.expenses.FindAllocationByPair(ctx, in.ApartmentID, in.ExpenseID)
	}
	return nil, ErrMissingAllocation
}

// Get busca um pagamento visível para o Principal
func (s *PaymentService) Get(ctx context.Context, p auth.Principal, id string) (*payment.Payment, error) {
	pay, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, res, err := s.apartment(ctx, pay.ApartmentID, true)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanView(p, res)); err != nil {
		return nil, err
	}
	return pay, nil
}

// List retorna os pagamentos visíveis; apartmentID opcional restringe a um apartamento
func (s *PaymentService) List(ctx context.Context, p auth.Principal, apartmentID string) ([]*payment.Payment, error) {
	if apartmentID != "" {
		_, res, err := s.apartment(ctx, apartmentID, true)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		return s.payments.List(ctx, payment.Filter{ApartmentID: apartmentID})
	}

	scope, ok := policy.ListScope(p, true)
	if !ok {
		return []*payment.Payment{}, nil
	}
	return s.payments.List(ctx, payment.Filter{
		AssociationID: scope.AssociationID,
		BlockID:       scope.BlockID,
		OwnerID:       scope.OwnerID,
	})
}
