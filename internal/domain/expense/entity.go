package expense

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = domain.Wrap(domain.ErrNotFound, "despesa não encontrada")
	ErrAllocationNotFound = domain.Wrap(domain.ErrNotFound, "cota de apartamento não encontrada")
	ErrEmptyDescription   = domain.Wrap(domain.ErrValidation, "descrição não pode ser vazia")
	ErrEmptyBlockID       = domain.Wrap(domain.ErrValidation, "ID do bloco não pode ser vazio")
	ErrInvalidCategory    = domain.Wrap(domain.ErrValidation, "categoria de despesa inválida")
	ErrEmptyDueDate       = domain.Wrap(domain.ErrValidation, "data de vencimento não pode ser vazia")
	ErrInvalidStatus      = domain.Wrap(domain.ErrValidation, "status inválido")
)

// Category representa a categoria de uma despesa do bloco
type Category string

const (
	CategoryMaintenance    Category = "Întreținere"
	CategoryRepairs        Category = "Reparații"
	CategoryCleaning       Category = "Curățenie"
	CategoryUtilities      Category = "Utilități"
	CategoryAdministration Category = "Administrare"
	CategoryRepairFund     Category = "Fond_de_reparații"
	CategoryOther          Category = "Alte_cheltuieli"
)

// Categories lista as categorias aceitas, na ordem de exibição
var Categories = []Category{
	CategoryMaintenance,
	CategoryRepairs,
	CategoryCleaning,
	CategoryUtilities,
	CategoryAdministration,
	CategoryRepairFund,
	CategoryOther,
}

// ParseCategory valida uma categoria recebida da API
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Status representa o estado de uma cota (e, por derivação, da despesa)
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

// ParseStatus valida um status recebido em filtros
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusOverdue:
		return StatusOverdue, nil
	}
	return "", ErrInvalidStatus
}

// AllocationSummary resume o estado das cotas de uma despesa
type AllocationSummary struct {
	Total   int
	Paid    int
	Overdue int
}

// Expense representa uma cobrança lançada no nível do bloco
type Expense struct {
	ID                 string          `json:"id"`
	BlockID            string          `json:"blockId"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Category           Category        `json:"category"`
	DueDate            time.Time       `json:"dueDate"`
	DistributionPolicy Policy          `json:"distributionPolicy,omitempty"`
	DistributedAt      *time.Time      `json:"distributedAt,omitempty"`
	CreatedBy          string          `json:"createdBy,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`

	// Visões derivadas
	BlockName string            `json:"blockName"`
	Summary   AllocationSummary `json:"-"`
}

// NewExpense cria uma nova despesa ainda não distribuída
func NewExpense(blockID, description string, amount decimal.Decimal, category Category, dueDate time.Time, createdBy string) (*Expense, error) {
	if blockID == "" {
		return nil, ErrEmptyBlockID
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, ErrEmptyDueDate
	}

	now := time.Now()
	return &Expense{
		ID:          uuid.New().String(),
		BlockID:     blockID,
		Description: description,
		Amount:      amount,
		Category:    category,
		DueDate:     dueDate,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsDistributed indica se a despesa já foi repartida entre os apartamentos
func (e *Expense) IsDistributed() bool {
	return e.DistributedAt != nil
}

// Status deriva o estado da despesa a partir das suas cotas
func (e *Expense) Status() Status {
	s := e.Summary
	switch {
	case s.Total > 0 && s.Paid == s.Total:
		return StatusPaid
	case s.Overdue > 0:
		return StatusOverdue
	default:
		return StatusPending
	}
}
