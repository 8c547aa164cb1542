package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const associationColumns = `
	a.id, a.name, a.address, a.phone, a.email, a.created_at, a.updated_at,
	(SELECT COUNT(*) FROM blocks b WHERE b.association_id = a.id),
	(SELECT COUNT(*) FROM apartments ap JOIN blocks b ON b.id = ap.block_id WHERE b.association_id = a.id)
`

// PostgresAssociationRepository implementa association.Repository usando PostgreSQL
type PostgresAssociationRepository struct {
	db *database.PostgresDB
}

// NewPostgresAssociationRepository cria uma nova instância de PostgresAssociationRepository
func NewPostgresAssociationRepository(db *database.PostgresDB) *PostgresAssociationRepository {
	return &PostgresAssociationRepository{db: db}
}

// Create implementa association.Repository.Create
func (r *PostgresAssociationRepository) Create(ctx context.Context, a *association.Association) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO associations (id, name, address, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Name, a.Address, a.Phone, a.Email, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir associação: %w", err)
	}
	return nil
}

// FindByID implementa association.Repository.FindByID
func (r *PostgresAssociationRepository) FindByID(ctx context.Context, id string) (*association.Association, error) {
	row := r.db.Pool().QueryRow(ctx, "SELECT "+associationColumns+" FROM associations a WHERE a.id = $1", id)
	a, err := scanAssociation(row)
	if err != nil {
		if isNotFound(err) {
			return nil, association.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar associação: %w", err)
	}
	return a, nil
}

// List implementa association.Repository.List
func (r *PostgresAssociationRepository) List(ctx context.Context, ids []string) ([]*association.Association, error) {
	var w where
	if ids != nil {
		w.add("a.id = ANY(%s::uuid[])", ids)
	}

	rows, err := r.db.Pool().Query(ctx, "SELECT "+associationColumns+" FROM associations a"+w.String()+" ORDER BY a.name", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar associações: %w", err)
	}
	defer rows.Close()

	var list []*association.Association
	for rows.Next() {
		a, err := scanAssociation(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler associação: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update implementa association.Repository.Update
func (r *PostgresAssociationRepository) Update(ctx context.Context, a *association.Association) error {
	tag, err := r.db.Pool().Exec(ctx, `
		UPDATE associations SET name = $2, address = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1`,
		a.ID, a.Name, a.Address, a.Phone, a.Email, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar associação: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return association.ErrNotFound
	}
	return nil
}

func scanAssociation(row pgx.Row) (*association.Association, error) {
	a := &association.Association{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Address, &a.Phone, &a.Email, &a.CreatedAt, &a.UpdatedAt,
		&a.BlocksCount, &a.ApartmentsCount,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
