package repair

import (
	"context"
)

// Filter restringe a listagem de pedidos de reparo
type Filter struct {
	BlockID       string
	ApartmentID   string
	AssociationID string
	TenantID      string
	Status        Status
}

// Repository define as operações de persistência para pedidos de reparo
type Repository interface {
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, error)
	Update(ctx context.Context, r *Request) error
}
