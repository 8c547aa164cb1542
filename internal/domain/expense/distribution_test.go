package expense

import (
	"fmt"
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestExpense(t *testing.T, amount string) *Expense {
	t.Helper()
	e, err := NewExpense("block-1", "Curățenie scară", dec(amount), CategoryCleaning, time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), "user-1")
	require.NoError(t, err)
	return e
}

func apartments(areas ...string) []*apartment.Apartment {
	list := make([]*apartment.Apartment, len(areas))
	for i, area := range areas {
		list[i] = &apartment.Apartment{
			ID:      fmt.Sprintf("apt-%02d", i+1),
			BlockID: "block-1",
			Number:  fmt.Sprintf("%d", i+1),
			Area:    dec(area),
		}
	}
	return list
}

func amounts(allocations []*ApartmentExpense) []string {
	out := make([]string, len(allocations))
	for i, a := range allocations {
		out[i] = a.Amount.StringFixed(2)
	}
	return out
}

func TestDistributeAreaWeighted(t *testing.T) {
	e := newTestExpense(t, "200")

	allocations, err := Distribute(e, apartments("40", "60", "100"), PolicyAreaWeighted)
	require.NoError(t, err)

	assert.Equal(t, []string{"40.00", "60.00", "100.00"}, amounts(allocations))
	assert.True(t, Sum(allocations).Equal(e.Amount))
}

func TestDistributeEqualSplitRemainderGoesToFirst(t *testing.T) {
	e := newTestExpense(t, "100")

	allocations, err := Distribute(e, apartments("50", "50", "50"), PolicyEqualSplit)
	require.NoError(t, err)

	assert.Equal(t, []string{"33.34", "33.33", "33.33"}, amounts(allocations))
	assert.True(t, Sum(allocations).Equal(dec("100.00")))
}

func TestDistributeOrdersByApartmentID(t *testing.T) {
	e := newTestExpense(t, "100")
	list := apartments("10", "10", "10")
	list[0], list[2] = list[2], list[0]

	allocations, err := Distribute(e, list, PolicyEqualSplit)
	require.NoError(t, err)

	assert.Equal(t, "apt-01", allocations[0].ApartmentID)
	assert.Equal(t, "33.34", allocations[0].Amount.StringFixed(2))
}

func TestDistributeSumIsExact(t *testing.T) {
	cases := []struct {
		amount string
		areas  []string
	}{
		{"0.02", []string{"30", "40"}},
		{"1000.00", []string{"33.3", "41.75", "58", "77.15", "12"}},
		{"99.99", []string{"1", "1", "1", "1", "1", "1", "1"}},
		{"12345.67", []string{"45.5", "45.5", "62.25", "80"}},
	}

	for _, tc := range cases {
		for _, policy := range []Policy{PolicyEqualSplit, PolicyAreaWeighted} {
			t.Run(fmt.Sprintf("%s/%s/%d", policy, tc.amount, len(tc.areas)), func(t *testing.T) {
				e := newTestExpense(t, tc.amount)
				allocations, err := Distribute(e, apartments(tc.areas...), policy)
				require.NoError(t, err)
				require.Len(t, allocations, len(tc.areas))
				assert.True(t, Sum(allocations).Equal(e.Amount), "soma %s != %s", Sum(allocations), e.Amount)
				for _, a := range allocations {
					assert.True(t, a.Amount.IsPositive(), "cota %s de %s", a.Amount, a.ApartmentID)
				}
			})
		}
	}
}

func TestDistributeRejectsZeroShares(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		areas  []string
		policy Policy
	}{
		{"menos bani que apartamentos", "0.02", []string{"1", "1", "1"}, PolicyEqualSplit},
		{"um ban para dois", "0.01", []string{"30", "40"}, PolicyEqualSplit},
		{"área ínfima arredonda para zero", "1.00", []string{"1000", "1"}, PolicyAreaWeighted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distribute(newTestExpense(t, tc.amount), apartments(tc.areas...), tc.policy)
			assert.ErrorIs(t, err, ErrShareTooSmall)
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		})
	}
}

func TestDistributeRejectsAmountAboveLimit(t *testing.T) {
	e := newTestExpense(t, "10")
	e.Amount = dec("100000000000000000")

	_, err := Distribute(e, apartments("10", "10"), PolicyEqualSplit)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestDistributeInitialState(t *testing.T) {
	e := newTestExpense(t, "90")

	allocations, err := Distribute(e, apartments("1", "2", "3"), PolicyEqualSplit)
	require.NoError(t, err)

	for _, a := range allocations {
		assert.Equal(t, StatusPending, a.Status)
		assert.Equal(t, e.DueDate, a.DueDate)
		assert.Equal(t, e.ID, a.ExpenseID)
		assert.True(t, a.PaidAmount.IsZero())
	}
}

func TestDistributeErrors(t *testing.T) {
	t.Run("bloco vazio", func(t *testing.T) {
		_, err := Distribute(newTestExpense(t, "10"), nil, PolicyEqualSplit)
		assert.ErrorIs(t, err, domain.ErrEmptyBlock)
	})

	t.Run("valor inválido", func(t *testing.T) {
		e := newTestExpense(t, "10")
		e.Amount = dec("-5")
		_, err := Distribute(e, apartments("10"), PolicyEqualSplit)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		e.Amount = dec("1.005")
		_, err = Distribute(e, apartments("10"), PolicyEqualSplit)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("área não positiva", func(t *testing.T) {
		_, err := Distribute(newTestExpense(t, "10"), apartments("10", "0"), PolicyAreaWeighted)
		assert.ErrorIs(t, err, ErrInvalidArea)
	})

	t.Run("política desconhecida", func(t *testing.T) {
		_, err := Distribute(newTestExpense(t, "10"), apartments("10"), Policy("RANDOM"))
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("", PolicyAreaWeighted)
	require.NoError(t, err)
	assert.Equal(t, PolicyAreaWeighted, p)

	p, err = ParsePolicy("equal_split", PolicyAreaWeighted)
	require.NoError(t, err)
	assert.Equal(t, PolicyEqualSplit, p)

	_, err = ParsePolicy("x", PolicyEqualSplit)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
