package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApartmentExpense é a cota de um apartamento em uma despesa do bloco
type ApartmentExpense struct {
	ID          string          `json:"id"`
	ApartmentID string          `json:"apartmentId"`
	ExpenseID   string          `json:"expenseId"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	DueDate     time.Time       `json:"dueDate"`
	Status      Status          `json:"status"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Visões derivadas
	ApartmentNumber string   `json:"apartmentNumber,omitempty"`
	Expense         *Expense `json:"expense,omitempty"`
}

func newApartmentExpense(e *Expense, apartmentID string, amount decimal.Decimal, now time.Time) *ApartmentExpense {
	return &ApartmentExpense{
		ID:          uuid.New().String(),
		ApartmentID: apartmentID,
		ExpenseID:   e.ID,
		Amount:      amount,
		PaidAmount:  decimal.Zero,
		DueDate:     e.DueDate,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Outstanding retorna o saldo devedor da cota
func (a *ApartmentExpense) Outstanding() decimal.Decimal {
	return a.Amount.Sub(a.PaidAmount)
}

// IsSettled indica se a cota está quitada
func (a *ApartmentExpense) IsSettled() bool {
	return a.Status == StatusPaid
}

// IsPastDue indica se o vencimento é anterior a asOf
func (a *ApartmentExpense) IsPastDue(asOf time.Time) bool {
	return a.DueDate.Before(asOf)
}

// MarkOverdue aplica a transição PENDING -> OVERDUE quando vencida.
// Retorna true se o status mudou.
func (a *ApartmentExpense) MarkOverdue(asOf time.Time) bool {
	if a.Status != StatusPending || !a.IsPastDue(asOf) {
		return false
	}
	a.Status = StatusOverdue
	a.UpdatedAt = asOf
	return true
}

// CanTransition informa se a máquina de estados permite from -> to
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusOverdue || to == StatusPaid
	case StatusOverdue:
		return to == StatusPaid
	default:
		// PAID é terminal
		return false
	}
}
