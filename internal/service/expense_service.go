package service

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/shopspring/decimal"
)

// ExpenseInput reúne os dados de uma nova despesa
type ExpenseInput struct {
	BlockID     string
	Description string
	Amount      decimal.Decimal
	Category    expense.Category
	DueDate     time.Time
	// Policy vazia usa a política padrão configurada
	Policy string
	// SkipDistribution grava a despesa sem gerar as cotas
	SkipDistribution bool
}

// AllocationQuery restringe a listagem de cotas
type AllocationQuery struct {
	ApartmentID string
	ExpenseID   string
	Status      expense.Status
}

// ExpenseService lança despesas e as distribui entre os apartamentos do bloco
type ExpenseService struct {
	base
	locator
	expenses      expense.Repository
	defaultPolicy expense.Policy
}

// NewExpenseService cria uma nova instância de ExpenseService
func NewExpenseService(blocks block.Repository, apartments apartment.Repository, expenses expense.Repository, defaultPolicy expense.Policy, opts ...Option) *ExpenseService {
	if defaultPolicy == "" {
		defaultPolicy = expense.PolicyEqualSplit
	}
	return &ExpenseService{
		base:          newBase(opts),
		locator:       locator{blocks: blocks, apartments: apartments},
		expenses:      expenses,
		defaultPolicy: defaultPolicy,
	}
}

// Create lança uma despesa no bloco e, salvo pedido em contrário, já a
// distribui; despesa e cotas são gravadas na mesma transação
func (s *ExpenseService) Create(ctx context.Context, p auth.Principal, in ExpenseInput) (*expense.Expense, error) {
	_, res, err := s.block(ctx, in.BlockID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}
	distribution, err := expense.ParsePolicy(in.Policy, s.defaultPolicy)
	if err != nil {
		return nil, err
	}

	e, err := expense.NewExpense(in.BlockID, in.Description, in.Amount, in.Category, in.DueDate, p.UserID)
	if err != nil {
		return nil, err
	}

	if in.SkipDistribution {
		if err := s.expenses.Create(ctx, e); err != nil {
			return nil, err
		}
		return s.expenses.FindByID(ctx, e.ID)
	}

	allocations, err := s.allocate(ctx, e, distribution)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.CreateDistributed(ctx, e, allocations); err != nil {
		return nil, err
	}

	s.log.Info("despesa lançada e distribuída",
		"expense_id", e.ID, "block_id", e.BlockID, "policy", distribution, "allocations", len(allocations))
	return s.expenses.FindByID(ctx, e.ID)
}

// Distribute reparte uma despesa ainda não distribuída
func (s *ExpenseService) Distribute(ctx context.Context, p auth.Principal, expenseID, policyName string) ([]*expense.ApartmentExpense, error) {
	e, err := s.expenses.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	_, res, err := s.block(ctx, e.BlockID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}
	if e.IsDistributed() {
		return nil, domain.ErrAlreadyDistributed
	}
	distribution, err := expense.ParsePolicy(policyName, s.defaultPolicy)
	if err != nil {
		return nil, err
	}

	allocations, err := s.allocate(ctx, e, distribution)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.SaveAllocations(ctx, e, allocations); err != nil {
		return nil, err
	}

	s.log.Info("despesa distribuída", "expense_id", e.ID, "policy", distribution, "allocations", len(allocations))
	return s.expenses.ListAllocations(ctx, expense.AllocationFilter{ExpenseID: e.ID})
}

func (s *ExpenseService) allocate(ctx context.Context, e *expense.Expense, distribution expense.Policy) ([]*expense.ApartmentExpense, error) {
	apartments, err := s.apartments.List(ctx, apartment.Filter{BlockID: e.BlockID})
	if err != nil {
		return nil, err
	}
	allocations, err := expense.Distribute(e, apartments, distribution)
	if err != nil {
		return nil, err
	}
	at := s.now()
	e.DistributionPolicy = distribution
	e.DistributedAt = &at
	e.UpdatedAt = at
	return allocations, nil
}

// Get busca uma despesa visível para o Principal
func (s *ExpenseService) Get(ctx context.Context, p auth.Principal, id string) (*expense.Expense, error) {
	e, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, res, err := s.block(ctx, e.BlockID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanView(p, res)); err != nil {
		return nil, err
	}
	return e, nil
}

// List retorna as despesas visíveis; blockID opcional restringe a um bloco
func (s *ExpenseService) List(ctx context.Context, p auth.Principal, blockID string) ([]*expense.Expense, error) {
	if blockID != "" {
		_, res, err := s.block(ctx, blockID)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		return s.expenses.List(ctx, expense.Filter{BlockID: blockID})
	}

	scope, ok := policy.ListScope(p, false)
	if !ok {
		return []*expense.Expense{}, nil
	}
	return s.expenses.List(ctx, expense.Filter{AssociationID: scope.AssociationID, BlockID: scope.BlockID})
}

// ListAllocations retorna as cotas visíveis. Moradores só veem as cotas dos
// apartamentos de que são proprietários.
func (s *ExpenseService) ListAllocations(ctx context.Context, p auth.Principal, q AllocationQuery) ([]*expense.ApartmentExpense, error) {
	f := expense.AllocationFilter{ExpenseID: q.ExpenseID, Status: q.Status}

	if q.ApartmentID != "" {
		_, res, err := s.apartment(ctx, q.ApartmentID, true)
		if err != nil {
			return nil, err
		}
		if err := policy.Require(policy.CanView(p, res)); err != nil {
			return nil, err
		}
		f.ApartmentID = q.ApartmentID
		return s.expenses.ListAllocations(ctx, f)
	}

	scope, ok := policy.ListScope(p, true)
	if !ok {
		return []*expense.ApartmentExpense{}, nil
	}
	f.AssociationID = scope.AssociationID
	f.BlockID = scope.BlockID
	f.OwnerID = scope.OwnerID
	return s.expenses.ListAllocations(ctx, f)
}
