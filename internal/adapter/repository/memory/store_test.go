package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/dashboard"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store      *Store
	block      *block.Block
	apartments []*apartment.Apartment
}

func newFixture(t *testing.T, areas ...int64) fixture {
	t.Helper()
	ctx := context.Background()
	s := NewStore()

	a, err := association.NewAssociation("Asociația Florilor", "Str. Lalelelor 1", "", "")
	require.NoError(t, err)
	require.NoError(t, s.Associations().Create(ctx, a))

	b, err := block.NewBlock(a.ID, "Bloc A", "Str. Lalelelor 1A")
	require.NoError(t, err)
	require.NoError(t, s.Blocks().Create(ctx, b))

	f := fixture{store: s, block: b}
	for i, area := range areas {
		ap, err := apartment.NewApartment(b.ID, string(rune('1'+i)), i, decimal.NewFromInt(area), "")
		require.NoError(t, err)
		require.NoError(t, s.Apartments().Create(ctx, ap))
		f.apartments = append(f.apartments, ap)
	}
	return f
}

func newExpense(t *testing.T, blockID string, amount string, due time.Time) *expense.Expense {
	t.Helper()
	e, err := expense.NewExpense(blockID, "Curățenie scară", decimal.RequireFromString(amount), expense.CategoryCleaning, due, "")
	require.NoError(t, err)
	return e
}

func distribute(t *testing.T, f fixture, e *expense.Expense) []*expense.ApartmentExpense {
	t.Helper()
	allocations, err := expense.Distribute(e, f.apartments, expense.PolicyEqualSplit)
	require.NoError(t, err)
	require.NoError(t, f.store.Expenses().CreateDistributed(context.Background(), e, allocations))
	return allocations
}

func TestApartmentNumberUniqueWithinBlock(t *testing.T) {
	f := newFixture(t, 50)
	dup, err := apartment.NewApartment(f.block.ID, f.apartments[0].Number, 0, decimal.NewFromInt(40), "")
	require.NoError(t, err)

	err = f.store.Apartments().Create(context.Background(), dup)
	assert.ErrorIs(t, err, apartment.ErrDuplicateNumber)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSaveAllocationsRejectsSecondDistribution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40, 60, 100)
	repo := f.store.Expenses()

	e := newExpense(t, f.block.ID, "200", time.Now().Add(24*time.Hour))
	require.NoError(t, repo.Create(ctx, e))

	first, err := expense.Distribute(e, f.apartments, expense.PolicyAreaWeighted)
	require.NoError(t, err)
	now := time.Now()
	e.DistributedAt = &now
	require.NoError(t, repo.SaveAllocations(ctx, e, first))

	second, err := expense.Distribute(e, f.apartments, expense.PolicyEqualSplit)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.SaveAllocations(ctx, e, second), domain.ErrAlreadyDistributed)

	list, err := repo.ListAllocations(ctx, expense.AllocationFilter{ExpenseID: e.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, expense.Sum(list).Equal(decimal.NewFromInt(200)))
}

func TestConcurrentDistributionWritesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 50)
	repo := f.store.Expenses()

	e := newExpense(t, f.block.ID, "100", time.Now())
	require.NoError(t, repo.Create(ctx, e))

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allocations, err := expense.Distribute(e, f.apartments, expense.PolicyEqualSplit)
			if err != nil {
				errs <- err
				return
			}
			at := time.Now()
			copyOf := *e
			copyOf.DistributedAt = &at
			errs <- repo.SaveAllocations(ctx, &copyOf, allocations)
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyDistributed)
	}
	assert.Equal(t, 1, succeeded)

	list, err := repo.ListAllocations(ctx, expense.AllocationFilter{ExpenseID: e.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMarkOverdueIsIdempotentAndSkipsPaid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 50, 50)
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	allocations := distribute(t, f, newExpense(t, f.block.ID, "90", due))

	reconciler := payment.NewReconciler(payment.PolicyFullSettlement)
	_, err := f.store.Payments().Apply(ctx, allocations[0].ID, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
		p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, ae.Outstanding(), payment.MethodCash, "", due.Add(-time.Hour))
		return p, reconciler.Apply(ae, p, p.PaymentDate)
	})
	require.NoError(t, err)

	asOf := due.Add(48 * time.Hour)
	changed, err := f.store.Expenses().MarkOverdue(ctx, "", asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	changed, err = f.store.Expenses().MarkOverdue(ctx, "", asOf)
	require.NoError(t, err)
	assert.Zero(t, changed)

	paid, err := f.store.Expenses().FindAllocation(ctx, allocations[0].ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPaid, paid.Status)

	overdue, err := f.store.Expenses().ListAllocations(ctx, expense.AllocationFilter{Status: expense.StatusOverdue})
	require.NoError(t, err)
	assert.Len(t, overdue, 2)
}

func TestMarkOverdueScopedToAssociation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 50)
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	distribute(t, f, newExpense(t, f.block.ID, "90", due))

	other, err := association.NewAssociation("Asociația Teilor", "Str. Teilor 3", "", "")
	require.NoError(t, err)
	require.NoError(t, f.store.Associations().Create(ctx, other))
	otherBlock, err := block.NewBlock(other.ID, "Bloc T", "Str. Teilor 3A")
	require.NoError(t, err)
	require.NoError(t, f.store.Blocks().Create(ctx, otherBlock))
	flat, err := apartment.NewApartment(otherBlock.ID, "1", 0, decimal.NewFromInt(70), "")
	require.NoError(t, err)
	require.NoError(t, f.store.Apartments().Create(ctx, flat))
	foreign := distribute(t, fixture{store: f.store, block: otherBlock, apartments: []*apartment.Apartment{flat}},
		newExpense(t, otherBlock.ID, "40", due))

	changed, err := f.store.Expenses().MarkOverdue(ctx, f.block.AssociationID, due.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	untouched, err := f.store.Expenses().FindAllocation(ctx, foreign[0].ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPending, untouched.Status)
}

func TestApplyRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	allocations := distribute(t, f, newExpense(t, f.block.ID, "10", time.Now().Add(time.Hour)))

	reconciler := payment.NewReconciler(payment.PolicyFullSettlement)
	_, err := f.store.Payments().Apply(ctx, allocations[0].ID, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
		p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, decimal.NewFromInt(3), payment.MethodCard, "", time.Now())
		return p, reconciler.Apply(ae, p, time.Now())
	})
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)

	stored, err := f.store.Expenses().FindAllocation(ctx, allocations[0].ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPending, stored.Status)
	assert.True(t, stored.PaidAmount.IsZero())

	list, err := f.store.Payments().List(ctx, payment.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApplyRejectsDuplicateIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 50)
	allocations := distribute(t, f, newExpense(t, f.block.ID, "20", time.Now().Add(time.Hour)))

	pay := func(aeID string) error {
		_, err := f.store.Payments().Apply(ctx, aeID, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
			p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, ae.Outstanding(), payment.MethodTransfer, "", time.Now())
			p.IdempotencyKey = "chave-1"
			return p, payment.NewReconciler("").Apply(ae, p, time.Now())
		})
		return err
	}
	require.NoError(t, pay(allocations[0].ID))
	assert.ErrorIs(t, pay(allocations[1].ID), payment.ErrDuplicateKey)

	found, err := f.store.Payments().FindByIdempotencyKey(ctx, "chave-1")
	require.NoError(t, err)
	assert.Equal(t, allocations[0].ID, found.ApartmentExpenseID)
}

func TestExpenseViewDerivesStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 50)
	e := newExpense(t, f.block.ID, "20", time.Now().Add(time.Hour))
	allocations := distribute(t, f, e)

	for _, a := range allocations {
		_, err := f.store.Payments().Apply(ctx, a.ID, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
			p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, ae.Outstanding(), payment.MethodCash, "", time.Now())
			return p, payment.NewReconciler("").Apply(ae, p, time.Now())
		})
		require.NoError(t, err)
	}

	found, err := f.store.Expenses().FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bloc A", found.BlockName)
	assert.Equal(t, expense.StatusPaid, found.Status())
}

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 50, 50, 50)

	owned := f.apartments[0]
	owned.OwnerID = "u-owner"
	require.NoError(t, f.store.Apartments().Update(ctx, owned))

	allocations := distribute(t, f, newExpense(t, f.block.ID, "40", time.Now().Add(time.Hour)))
	var ownedShare string
	for _, a := range allocations {
		if a.ApartmentID == owned.ID {
			ownedShare = a.ID
		}
	}
	_, err := f.store.Payments().Apply(ctx, ownedShare, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
		p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, ae.Outstanding(), payment.MethodCash, "", time.Now())
		return p, payment.NewReconciler("").Apply(ae, p, time.Now())
	})
	require.NoError(t, err)

	c, err := f.store.Dashboard().Counts(ctx, dashboard.Scope{AssociationID: f.block.AssociationID})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Associations)
	assert.Equal(t, 1, c.Blocks)
	assert.Equal(t, 4, c.Apartments)
	assert.Equal(t, 1, c.OccupiedApartments)
	assert.Equal(t, 1, c.Expenses)
	assert.Equal(t, 3, c.PendingAllocations)
	assert.True(t, c.Revenue.Equal(decimal.NewFromInt(10)))

	mine, err := f.store.Dashboard().Counts(ctx, dashboard.Scope{OwnerID: "u-owner"})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Apartments)
	assert.Zero(t, mine.PendingAllocations)
}
