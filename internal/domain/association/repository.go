package association

import (
	"context"
)

// Repository define as operações de persistência para associações
type Repository interface {
	// Create persiste uma nova associação
	Create(ctx context.Context, a *Association) error

	// FindByID busca uma associação pelo ID
	FindByID(ctx context.Context, id string) (*Association, error)

	// List retorna as associações; ids vazio significa todas
	List(ctx context.Context, ids []string) ([]*Association, error)

	// Update atualiza uma associação existente
	Update(ctx context.Context, a *Association) error
}
