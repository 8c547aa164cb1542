package service

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/idempotency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

// testEnv monta os serviços sobre o armazenamento em memória com uma
// associação, um bloco com três apartamentos (40, 60 e 100 m²) e um morador
// proprietário do primeiro apartamento criado
type testEnv struct {
	ctx   context.Context
	store *memory.Store
	opts  []Option

	associations *AssociationService
	blocks       *BlockService
	apartments   *ApartmentService
	expenses     *ExpenseService
	payments     *PaymentService
	aging        *AgingService
	meters       *MeterService
	repairs      *RepairService
	users        *UserService

	admin  auth.Principal
	tenant auth.Principal

	association *association.Association
	block       *block.Block
	owned       *apartment.Apartment
	flats       []*apartment.Apartment
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithPolicy(t, payment.PolicyFullSettlement)
}

func newTestEnvWithPolicy(t *testing.T, paymentPolicy payment.Policy) *testEnv {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	opts := []Option{WithClock(func() time.Time { return testNow })}

	tokens, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	e := &testEnv{ctx: ctx, store: s, opts: opts}
	e.associations = NewAssociationService(s.Associations(), s.Users(), opts...)
	e.blocks = NewBlockService(s.Associations(), s.Blocks(), opts...)
	e.apartments = NewApartmentService(s.Blocks(), s.Apartments(), s.Users(), opts...)
	e.expenses = NewExpenseService(s.Blocks(), s.Apartments(), s.Expenses(), expense.PolicyEqualSplit, opts...)
	e.payments = NewPaymentService(s.Blocks(), s.Apartments(), s.Expenses(), s.Payments(),
		payment.NewReconciler(paymentPolicy), idempotency.NewMemoryStore(), opts...)
	e.aging = NewAgingService(s.Expenses(), opts...)
	e.meters = NewMeterService(s.Blocks(), s.Apartments(), s.Meters(), opts...)
	e.repairs = NewRepairService(s.Blocks(), s.Apartments(), s.Repairs(), opts...)
	e.users = NewUserService(s.Users(), s.Associations(), s.Blocks(), tokens, opts...)

	adminSession, err := e.users.Register(ctx, RegisterInput{
		Email: "admin@asociatie.ro", FirstName: "Ana", LastName: "Popescu", Password: "parola123", Role: "ADMIN_ASSOCIATION",
	})
	require.NoError(t, err)
	e.association, err = e.associations.Create(ctx, auth.PrincipalFromUser(adminSession.User), AssociationInput{
		Name: "Asociația Florilor", Address: "Str. Lalelelor 1",
	})
	require.NoError(t, err)
	e.admin = e.reload(t, adminSession.User.ID)

	e.block, err = e.blocks.Create(ctx, e.admin, e.association.ID, BlockInput{Name: "Bloc A", Address: "Str. Lalelelor 1A"})
	require.NoError(t, err)

	tenantSession, err := e.users.Register(ctx, RegisterInput{
		Email: "locatar@asociatie.ro", FirstName: "Ion", LastName: "Ionescu", Password: "parola123",
	})
	require.NoError(t, err)

	for i, area := range []int64{40, 60, 100} {
		in := ApartmentInput{Number: string(rune('1' + i)), Floor: i, Area: decimal.NewFromInt(area)}
		if i == 0 {
			in.OwnerID = tenantSession.User.ID
		}
		a, err := e.apartments.Create(ctx, e.admin, e.block.ID, in)
		require.NoError(t, err)
		e.flats = append(e.flats, a)
	}
	e.owned = e.flats[0]
	e.tenant = e.reload(t, tenantSession.User.ID)
	return e
}

func (e *testEnv) reload(t *testing.T, id string) auth.Principal {
	t.Helper()
	u, err := e.store.Users().FindByID(e.ctx, id)
	require.NoError(t, err)
	return auth.PrincipalFromUser(u)
}

func (e *testEnv) newUser(t *testing.T, email string, role user.Role) auth.Principal {
	t.Helper()
	u, err := user.NewUser(email, "Maria", "Georgescu", "parola123", role)
	require.NoError(t, err)
	require.NoError(t, e.store.Users().Create(e.ctx, u))
	return auth.PrincipalFromUser(u)
}

func (e *testEnv) createExpense(t *testing.T, amount string, due time.Time, policy string) *expense.Expense {
	t.Helper()
	exp, err := e.expenses.Create(e.ctx, e.admin, ExpenseInput{
		BlockID:     e.block.ID,
		Description: "Curățenie scară",
		Amount:      decimal.RequireFromString(amount),
		Category:    expense.CategoryCleaning,
		DueDate:     due,
		Policy:      policy,
	})
	require.NoError(t, err)
	return exp
}

func (e *testEnv) allocationOf(t *testing.T, expenseID, apartmentID string) *expense.ApartmentExpense {
	t.Helper()
	ae, err := e.store.Expenses().FindAllocationByPair(e.ctx, apartmentID, expenseID)
	require.NoError(t, err)
	return ae
}
