package expense

import (
	"context"
	"time"
)

// Filter restringe a listagem de despesas
type Filter struct {
	BlockID       string
	AssociationID string
}

// AllocationFilter restringe a listagem de cotas
type AllocationFilter struct {
	ApartmentID   string
	ExpenseID     string
	BlockID       string
	AssociationID string
	OwnerID       string
	Status        Status
}

// Repository define as operações de persistência para despesas e cotas
type Repository interface {
	// Create persiste uma despesa sem distribuí-la
	Create(ctx context.Context, e *Expense) error

	// CreateDistributed persiste a despesa e todas as cotas em uma única transação
	CreateDistributed(ctx context.Context, e *Expense, allocations []*ApartmentExpense) error

	// SaveAllocations grava as cotas de uma despesa existente de forma atômica.
	// Retorna domain.ErrAlreadyDistributed se a despesa já tiver cotas.
	SaveAllocations(ctx context.Context, e *Expense, allocations []*ApartmentExpense) error

	// FindByID busca uma despesa pelo ID, com o resumo das cotas
	FindByID(ctx context.Context, id string) (*Expense, error)

	// List retorna as despesas que atendem ao filtro, mais recentes primeiro
	List(ctx context.Context, filter Filter) ([]*Expense, error)

	// FindAllocation busca uma cota pelo ID
	FindAllocation(ctx context.Context, id string) (*ApartmentExpense, error)

	// FindAllocationByPair busca a cota de um apartamento em uma despesa
	FindAllocationByPair(ctx context.Context, apartmentID, expenseID string) (*ApartmentExpense, error)

	// ListAllocations retorna as cotas que atendem ao filtro, com a despesa embutida
	ListAllocations(ctx context.Context, filter AllocationFilter) ([]*ApartmentExpense, error)

	// MarkOverdue marca como OVERDUE as cotas PENDING vencidas antes de asOf
	// em uma única atualização condicional e retorna quantas mudaram.
	// associationID restringe a varredura a uma associação; vazio alcança todas.
	MarkOverdue(ctx context.Context, associationID string, asOf time.Time) (int64, error)
}
