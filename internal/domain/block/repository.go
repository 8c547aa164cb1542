package block

import (
	"context"
)

// Filter restringe a listagem de blocos
type Filter struct {
	AssociationID string
	BlockID       string
	IDs           []string
}

// Repository define as operações de persistência para blocos
type Repository interface {
	// Create persiste um novo bloco
	Create(ctx context.Context, b *Block) error

	// FindByID busca um bloco pelo ID, com as visões derivadas preenchidas
	FindByID(ctx context.Context, id string) (*Block, error)

	// List retorna os blocos que atendem ao filtro
	List(ctx context.Context, filter Filter) ([]*Block, error)

	// Update atualiza um bloco existente
	Update(ctx context.Context, b *Block) error
}
