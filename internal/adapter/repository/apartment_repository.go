package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const apartmentSelect = `
	SELECT ap.id, ap.block_id, ap.number, ap.floor, ap.area, ap.owner_id::text,
		ap.created_at, ap.updated_at, b.name,
		COALESCE(u.first_name || ' ' || u.last_name, '')
	FROM apartments ap
	JOIN blocks b ON b.id = ap.block_id
	LEFT JOIN users u ON u.id = ap.owner_id`

// PostgresApartmentRepository implementa apartment.Repository usando PostgreSQL
type PostgresApartmentRepository struct {
	db *database.PostgresDB
}

// NewPostgresApartmentRepository cria uma nova instância de PostgresApartmentRepository
func NewPostgresApartmentRepository(db *database.PostgresDB) *PostgresApartmentRepository {
	return &PostgresApartmentRepository{db: db}
}

// Create implementa apartment.Repository.Create
func (r *PostgresApartmentRepository) Create(ctx context.Context, a *apartment.Apartment) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO apartments (id, block_id, number, floor, area, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.BlockID, a.Number, a.Floor, a.Area, nullString(a.OwnerID), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apartment.ErrDuplicateNumber
		}
		return fmt.Errorf("falha ao inserir apartamento: %w", err)
	}
	return nil
}

// FindByID implementa apartment.Repository.FindByID
func (r *PostgresApartmentRepository) FindByID(ctx context.Context, id string) (*apartment.Apartment, error) {
	a, err := scanApartment(r.db.Pool().QueryRow(ctx, apartmentSelect+" WHERE ap.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return nil, apartment.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar apartamento: %w", err)
	}
	return a, nil
}

// List implementa apartment.Repository.List; a ordem é por ID, a mesma usada na distribuição
func (r *PostgresApartmentRepository) List(ctx context.Context, filter apartment.Filter) ([]*apartment.Apartment, error) {
	var w where
	w.eq("ap.block_id", filter.BlockID)
	w.eq("b.association_id", filter.AssociationID)
	w.eq("ap.owner_id", filter.OwnerID)

	rows, err := r.db.Pool().Query(ctx, apartmentSelect+w.String()+" ORDER BY ap.id", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar apartamentos: %w", err)
	}
	defer rows.Close()

	var list []*apartment.Apartment
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler apartamento: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update implementa apartment.Repository.Update
func (r *PostgresApartmentRepository) Update(ctx context.Context, a *apartment.Apartment) error {
	tag, err := r.db.Pool().Exec(ctx, `
		UPDATE apartments SET number = $2, floor = $3, area = $4, owner_id = $5, updated_at = $6
		WHERE id = $1`,
		a.ID, a.Number, a.Floor, a.Area, nullString(a.OwnerID), a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apartment.ErrDuplicateNumber
		}
		return fmt.Errorf("falha ao atualizar apartamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apartment.ErrNotFound
	}
	return nil
}

func scanApartment(row pgx.Row) (*apartment.Apartment, error) {
	a := &apartment.Apartment{}
	var ownerID *string
	err := row.Scan(
		&a.ID, &a.BlockID, &a.Number, &a.Floor, &a.Area, &ownerID,
		&a.CreatedAt, &a.UpdatedAt, &a.BlockName, &a.OwnerName,
	)
	if err != nil {
		return nil, err
	}
	a.OwnerID = stringValue(ownerID)
	return a, nil
}
