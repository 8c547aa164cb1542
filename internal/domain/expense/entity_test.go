package expense

import (
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewExpenseValidation(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)

	_, err := NewExpense("", "x", dec("1"), CategoryOther, due, "")
	assert.ErrorIs(t, err, ErrEmptyBlockID)

	_, err = NewExpense("b", "  ", dec("1"), CategoryOther, due, "")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = NewExpense("b", "x", dec("0"), CategoryOther, due, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = NewExpense("b", "x", dec("1"), Category("Gaze"), due, "")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = NewExpense("b", "x", dec("1"), CategoryOther, time.Time{}, "")
	assert.ErrorIs(t, err, ErrEmptyDueDate)
}

func TestExpenseDerivedStatus(t *testing.T) {
	e := &Expense{}
	assert.Equal(t, StatusPending, e.Status())

	e.Summary = AllocationSummary{Total: 3, Paid: 1}
	assert.Equal(t, StatusPending, e.Status())

	e.Summary = AllocationSummary{Total: 3, Paid: 1, Overdue: 1}
	assert.Equal(t, StatusOverdue, e.Status())

	e.Summary = AllocationSummary{Total: 3, Paid: 3}
	assert.Equal(t, StatusPaid, e.Status())
}

func TestApartmentExpenseMarkOverdue(t *testing.T) {
	due := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	a := &ApartmentExpense{Amount: dec("10"), DueDate: due, Status: StatusPending}

	assert.False(t, a.MarkOverdue(due), "vencimento igual a asOf não é atraso")
	assert.True(t, a.MarkOverdue(due.Add(time.Second)))
	assert.Equal(t, StatusOverdue, a.Status)
	assert.False(t, a.MarkOverdue(due.Add(time.Hour)), "segunda varredura não altera nada")

	paid := &ApartmentExpense{Amount: dec("10"), DueDate: due, Status: StatusPaid}
	assert.False(t, paid.MarkOverdue(due.AddDate(1, 0, 0)))
	assert.Equal(t, StatusPaid, paid.Status)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusOverdue))
	assert.True(t, CanTransition(StatusPending, StatusPaid))
	assert.True(t, CanTransition(StatusOverdue, StatusPaid))
	assert.False(t, CanTransition(StatusOverdue, StatusPending))
	assert.False(t, CanTransition(StatusPaid, StatusOverdue))
	assert.False(t, CanTransition(StatusPaid, StatusPending))
}
