package dto

import (
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// ExpenseRequest representa o lançamento de uma despesa. dueDate aceita
// AAAA-MM-DD (fim do dia no fuso da aplicação) ou RFC3339.
type ExpenseRequest struct {
	BlockID            string          `json:"blockId" binding:"required"`
	Description        string          `json:"description" binding:"required"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category" binding:"required"`
	DueDate            string          `json:"dueDate" binding:"required"`
	DistributionPolicy string          `json:"distributionPolicy"`
	// Distribute false grava a despesa sem gerar as cotas
	Distribute *bool `json:"distribute"`
}

// DistributeRequest escolhe a política de uma distribuição posterior
type DistributeRequest struct {
	DistributionPolicy string `json:"distributionPolicy"`
}

// ExpenseResponse representa uma despesa com o status derivado das cotas
type ExpenseResponse struct {
	ID                 string          `json:"id"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	BlockID            string          `json:"blockId"`
	BlockName          string          `json:"blockName,omitempty"`
	DueDate            time.Time       `json:"dueDate"`
	Status             string          `json:"status"`
	DistributionPolicy string          `json:"distributionPolicy,omitempty"`
	DistributedAt      *time.Time      `json:"distributedAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ApartmentExpenseResponse representa a cota de um apartamento
type ApartmentExpenseResponse struct {
	ID              string           `json:"id"`
	ApartmentID     string           `json:"apartmentId"`
	ApartmentNumber string           `json:"apartmentNumber,omitempty"`
	ExpenseID       string           `json:"expenseId"`
	Amount          decimal.Decimal  `json:"amount"`
	PaidAmount      decimal.Decimal  `json:"paidAmount"`
	Outstanding     decimal.Decimal  `json:"outstanding"`
	DueDate         time.Time        `json:"dueDate"`
	Status          string           `json:"status"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
	Expense         *ExpenseResponse `json:"expense,omitempty"`
}

// PaymentRequest representa um pagamento. A cota é informada pelo ID ou
// pelo par apartmentId/expenseId.
type PaymentRequest struct {
	ApartmentExpenseID string          `json:"apartmentExpenseId"`
	ApartmentID        string          `json:"apartmentId"`
	ExpenseID          string          `json:"expenseId"`
	Amount             decimal.Decimal `json:"amount"`
	Method             string          `json:"method" binding:"required"`
	Reference          string          `json:"reference"`
}

// PaymentResponse representa um pagamento registrado
type PaymentResponse struct {
	ID                 string          `json:"id"`
	ApartmentID        string          `json:"apartmentId"`
	ApartmentExpenseID string          `json:"apartmentExpenseId"`
	ExpenseID          string          `json:"expenseId"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentDate        time.Time       `json:"paymentDate"`
	Method             string          `json:"method"`
	Reference          string          `json:"reference,omitempty"`
}

// SweepRequest permite fixar a data de referência da varredura
type SweepRequest struct {
	AsOf string `json:"asOf"`
}

// SweepResponse informa quantas cotas mudaram para OVERDUE
type SweepResponse struct {
	Updated int64     `json:"updated"`
	AsOf    time.Time `json:"asOf"`
}

// ToExpenseResponse converte uma despesa do domínio para DTO de resposta
func ToExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:                 e.ID,
		Description:        e.Description,
		Amount:             e.Amount,
		Category:           string(e.Category),
		BlockID:            e.BlockID,
		BlockName:          e.BlockName,
		DueDate:            e.DueDate,
		Status:             string(e.Status()),
		DistributionPolicy: string(e.DistributionPolicy),
		DistributedAt:      e.DistributedAt,
		CreatedAt:          e.CreatedAt,
	}
}

// ToExpenseResponses converte uma lista de despesas
func ToExpenseResponses(list []*expense.Expense) []ExpenseResponse {
	data := make([]ExpenseResponse, len(list))
	for i, e := range list {
		data[i] = ToExpenseResponse(e)
	}
	return data
}

// ToApartmentExpenseResponse converte uma cota do domínio para DTO de resposta
func ToApartmentExpenseResponse(a *expense.ApartmentExpense) ApartmentExpenseResponse {
	r := ApartmentExpenseResponse{
		ID:              a.ID,
		ApartmentID:     a.ApartmentID,
		ApartmentNumber: a.ApartmentNumber,
		ExpenseID:       a.ExpenseID,
		Amount:          a.Amount,
		PaidAmount:      a.PaidAmount,
		Outstanding:     a.Outstanding(),
		DueDate:         a.DueDate,
		Status:          string(a.Status),
		PaidAt:          a.PaidAt,
	}
	if a.Expense != nil {
		e := ToExpenseResponse(a.Expense)
		r.Expense = &e
	}
	return r
}

// ToApartmentExpenseResponses converte uma lista de cotas
func ToApartmentExpenseResponses(list []*expense.ApartmentExpense) []ApartmentExpenseResponse {
	data := make([]ApartmentExpenseResponse, len(list))
	for i, a := range list {
		data[i] = ToApartmentExpenseResponse(a)
	}
	return data
}

// ToPaymentResponse converte um pagamento do domínio para DTO de resposta
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		ApartmentID:        p.ApartmentID,
		ApartmentExpenseID: p.ApartmentExpenseID,
		ExpenseID:          p.ExpenseID,
		Amount:             p.Amount,
		PaymentDate:        p.PaymentDate,
		Method:             string(p.Method),
		Reference:          p.Reference,
	}
}

// ToPaymentResponses converte uma lista de pagamentos
func ToPaymentResponses(list []*payment.Payment) []PaymentResponse {
	data := make([]PaymentResponse, len(list))
	for i, p := range list {
		data[i] = ToPaymentResponse(p)
	}
	return data
}
