package apartment

import (
	"context"
)

// Filter restringe a listagem de apartamentos
type Filter struct {
	BlockID       string
	AssociationID string
	OwnerID       string
}

// Repository define as operações de persistência para apartamentos
type Repository interface {
	// Create persiste um novo apartamento; número duplicado no bloco retorna ErrDuplicateNumber
	Create(ctx context.Context, a *Apartment) error

	// FindByID busca um apartamento pelo ID
	FindByID(ctx context.Context, id string) (*Apartment, error)

	// List retorna os apartamentos que atendem ao filtro, ordenados por ID
	List(ctx context.Context, filter Filter) ([]*Apartment, error)

	// Update atualiza um apartamento existente
	Update(ctx context.Context, a *Apartment) error
}
