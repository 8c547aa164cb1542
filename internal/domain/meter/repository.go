package meter

import (
	"context"
)

// Filter restringe a listagem de leituras
type Filter struct {
	ApartmentID   string
	BlockID       string
	AssociationID string
	OwnerID       string
	MeterType     Type
}

// Repository define as operações de persistência para leituras de medidor
type Repository interface {
	Create(ctx context.Context, r *Reading) error
	FindByID(ctx context.Context, id string) (*Reading, error)

	// List retorna as leituras mais recentes primeiro
	List(ctx context.Context, filter Filter) ([]*Reading, error)

	// FindLatest busca a última leitura de um medidor do apartamento
	FindLatest(ctx context.Context, apartmentID string, meterType Type) (*Reading, error)
}
