package announcement

import (
	"context"
)

// Filter restringe a listagem de anúncios
type Filter struct {
	BlockID       string
	AssociationID string
}

// Repository define as operações de persistência para anúncios
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	FindByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, error)
}
