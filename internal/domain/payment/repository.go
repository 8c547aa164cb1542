package payment

import (
	"context"

	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
)

// ApplyFunc valida e aplica o pagamento sobre a cota bloqueada.
// Um erro retornado aborta a transação.
type ApplyFunc func(ae *expense.ApartmentExpense) (*Payment, error)

// Filter restringe a listagem de pagamentos
type Filter struct {
	ApartmentID   string
	BlockID       string
	AssociationID string
	OwnerID       string
}

// Repository define as operações de persistência para pagamentos
type Repository interface {
	// Apply bloqueia a cota, executa fn e grava o pagamento e o novo estado
	// da cota na mesma transação
	Apply(ctx context.Context, apartmentExpenseID string, fn ApplyFunc) (*Payment, error)

	// FindByID busca um pagamento pelo ID
	FindByID(ctx context.Context, id string) (*Payment, error)

	// FindByIdempotencyKey busca o pagamento gravado com a chave informada
	FindByIdempotencyKey(ctx context.Context, key string) (*Payment, error)

	// List retorna os pagamentos que atendem ao filtro, mais recentes primeiro
	List(ctx context.Context, filter Filter) ([]*Payment, error)
}
