package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/adapter/repository"
	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB conecta ao banco de TEST_DATABASE_URL e aplica as migrações;
// sem a variável o teste é ignorado
func openTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definida")
	}

	log := logger.NewNop()
	migrator, err := database.NewMigrator(url, log)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	db, err := database.NewPostgresDB(context.Background(), config.DatabaseConfig{
		URL:            url,
		MaxConnections: 10,
		MinConnections: 1,
	}, log)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

type ledgerFixture struct {
	expenses *repository.PostgresExpenseRepository
	payments *repository.PostgresPaymentRepository
	block    *block.Block
	flats    []*apartment.Apartment
}

func newLedgerFixture(t *testing.T, db *database.PostgresDB) *ledgerFixture {
	t.Helper()
	ctx := context.Background()

	a, err := association.NewAssociation("Asociația Teilor", "Str. Teilor 3", "", "")
	require.NoError(t, err)
	require.NoError(t, repository.NewPostgresAssociationRepository(db).Create(ctx, a))

	b, err := block.NewBlock(a.ID, "Bloc T", "Str. Teilor 3A")
	require.NoError(t, err)
	require.NoError(t, repository.NewPostgresBlockRepository(db).Create(ctx, b))

	f := &ledgerFixture{
		expenses: repository.NewPostgresExpenseRepository(db),
		payments: repository.NewPostgresPaymentRepository(db),
		block:    b,
	}
	apartments := repository.NewPostgresApartmentRepository(db)
	for i, area := range []int64{40, 60, 100} {
		flat, err := apartment.NewApartment(b.ID, string(rune('1'+i)), i, decimal.NewFromInt(area), "")
		require.NoError(t, err)
		require.NoError(t, apartments.Create(ctx, flat))
		f.flats = append(f.flats, flat)
	}

	dup, err := apartment.NewApartment(b.ID, "1", 0, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	assert.ErrorIs(t, apartments.Create(ctx, dup), domain.ErrConflict)
	return f
}

func (f *ledgerFixture) distributedExpense(t *testing.T, amount string, due time.Time) (*expense.Expense, []*expense.ApartmentExpense) {
	t.Helper()
	e, err := expense.NewExpense(f.block.ID, "Curățenie scară", decimal.RequireFromString(amount), expense.CategoryCleaning, due, "")
	require.NoError(t, err)
	allocations, err := expense.Distribute(e, f.flats, expense.PolicyAreaWeighted)
	require.NoError(t, err)
	now := time.Now()
	e.DistributionPolicy = expense.PolicyAreaWeighted
	e.DistributedAt = &now
	require.NoError(t, f.expenses.CreateDistributed(context.Background(), e, allocations))
	return e, allocations
}

func TestPostgresLedger(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newLedgerFixture(t, db)

	e, allocations := f.distributedExpense(t, "200", time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC))

	stored, err := f.expenses.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Summary.Total)
	assert.True(t, stored.IsDistributed())

	// Uma segunda distribuição é rejeitada
	again, err := expense.Distribute(e, f.flats, expense.PolicyEqualSplit)
	require.NoError(t, err)
	assert.ErrorIs(t, f.expenses.SaveAllocations(ctx, e, again), domain.ErrAlreadyDistributed)

	// Pagamentos concorrentes sobre a mesma cota: apenas um quita
	target := allocations[0]
	reconciler := payment.NewReconciler(payment.PolicyFullSettlement)
	var wg sync.WaitGroup
	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.payments.Apply(ctx, target.ID, func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
				p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, ae.Amount, payment.MethodCash, "", time.Now())
				return p, reconciler.Apply(ae, p, time.Now())
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, settled int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadySettled):
			settled++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 3, settled)

	// A varredura não toca cotas PAID e é idempotente
	asOf := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	changed, err := f.expenses.MarkOverdue(ctx, uuid.New().String(), asOf)
	require.NoError(t, err)
	assert.Zero(t, changed, "associação sem cotas")

	changed, err = f.expenses.MarkOverdue(ctx, f.block.AssociationID, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)
	changed, err = f.expenses.MarkOverdue(ctx, "", asOf)
	require.NoError(t, err)
	assert.Zero(t, changed)

	paid, err := f.expenses.FindAllocation(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.StatusPaid, paid.Status)
}

func TestPostgresPaymentIdempotencyKey(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	f := newLedgerFixture(t, db)
	_, allocations := f.distributedExpense(t, "300", time.Now().Add(30*24*time.Hour))

	key := "chave-" + f.block.ID
	reconciler := payment.NewReconciler(payment.PolicyPartial)
	apply := func(ae *expense.ApartmentExpense) (*payment.Payment, error) {
		p := payment.NewPayment(ae.ApartmentID, ae.ID, ae.ExpenseID, decimal.NewFromInt(10), payment.MethodTransfer, "", time.Now())
		p.IdempotencyKey = key
		return p, reconciler.Apply(ae, p, time.Now())
	}

	first, err := f.payments.Apply(ctx, allocations[0].ID, apply)
	require.NoError(t, err)

	_, err = f.payments.Apply(ctx, allocations[0].ID, apply)
	assert.ErrorIs(t, err, payment.ErrDuplicateKey)

	found, err := f.payments.FindByIdempotencyKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	// A cota não recebeu o pagamento repetido
	ae, err := f.expenses.FindAllocation(ctx, allocations[0].ID)
	require.NoError(t, err)
	assert.True(t, ae.PaidAmount.Equal(decimal.NewFromInt(10)))
}
