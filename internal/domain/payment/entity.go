package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = domain.Wrap(domain.ErrNotFound, "pagamento não encontrado")
	ErrInvalidMethod = domain.Wrap(domain.ErrValidation, "método de pagamento inválido")
	ErrDuplicateKey  = domain.Wrap(domain.ErrConflict, "chave de idempotência já utilizada")
)

// Method representa a forma de pagamento
type Method string

const (
	MethodCash     Method = "CASH"
	MethodCard     Method = "CARD"
	MethodTransfer Method = "TRANSFER"
)

// ParseMethod valida o método de pagamento
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodCash:
		return MethodCash, nil
	case MethodCard:
		return MethodCard, nil
	case MethodTransfer:
		return MethodTransfer, nil
	}
	return "", ErrInvalidMethod
}

// Payment representa a quitação (total ou parcial) de uma cota
type Payment struct {
	ID                 string          `json:"id"`
	ApartmentID        string          `json:"apartmentId"`
	ApartmentExpenseID string          `json:"apartmentExpenseId"`
	ExpenseID          string          `json:"expenseId"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentDate        time.Time       `json:"paymentDate"`
	Method             Method          `json:"method"`
	Reference          string          `json:"reference,omitempty"`
	IdempotencyKey     string          `json:"-"`
	CreatedBy          string          `json:"createdBy,omitempty"`
}

// NewPayment cria um pagamento com data atribuída pelo servidor
func NewPayment(apartmentID, apartmentExpenseID, expenseID string, amount decimal.Decimal, method Method, reference string, paidAt time.Time) *Payment {
	return &Payment{
		ID:                 uuid.New().String(),
		ApartmentID:        apartmentID,
		ApartmentExpenseID: apartmentExpenseID,
		ExpenseID:          expenseID,
		Amount:             amount,
		PaymentDate:        paidAt,
		Method:             method,
		Reference:          strings.TrimSpace(reference),
	}
}
