package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const blockSelect = `
	SELECT b.id, b.association_id, b.name, b.address, b.created_at, b.updated_at,
		a.name,
		(SELECT COUNT(*) FROM apartments ap WHERE ap.block_id = b.id)
	FROM blocks b
	JOIN associations a ON a.id = b.association_id`

// PostgresBlockRepository implementa block.Repository usando PostgreSQL
type PostgresBlockRepository struct {
	db *database.PostgresDB
}

// NewPostgresBlockRepository cria uma nova instância de PostgresBlockRepository
func NewPostgresBlockRepository(db *database.PostgresDB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// Create implementa block.Repository.Create
func (r *PostgresBlockRepository) Create(ctx context.Context, b *block.Block) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO blocks (id, association_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.AssociationID, b.Name, b.Address, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir bloco: %w", err)
	}
	return nil
}

// FindByID implementa block.Repository.FindByID
func (r *PostgresBlockRepository) FindByID(ctx context.Context, id string) (*block.Block, error) {
	b, err := scanBlock(r.db.Pool().QueryRow(ctx, blockSelect+" WHERE b.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return nil, block.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar bloco: %w", err)
	}
	return b, nil
}

// List implementa block.Repository.List
func (r *PostgresBlockRepository) List(ctx context.Context, filter block.Filter) ([]*block.Block, error) {
	var w where
	w.eq("b.association_id", filter.AssociationID)
	w.eq("b.id", filter.BlockID)
	if filter.IDs != nil {
		w.add("b.id = ANY(%s::uuid[])", filter.IDs)
	}

	rows, err := r.db.Pool().Query(ctx, blockSelect+w.String()+" ORDER BY b.name", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar blocos: %w", err)
	}
	defer rows.Close()

	var list []*block.Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler bloco: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update implementa block.Repository.Update
func (r *PostgresBlockRepository) Update(ctx context.Context, b *block.Block) error {
	tag, err := r.db.Pool().Exec(ctx,
		"UPDATE blocks SET name = $2, address = $3, updated_at = $4 WHERE id = $1",
		b.ID, b.Name, b.Address, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar bloco: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return block.ErrNotFound
	}
	return nil
}

func scanBlock(row pgx.Row) (*block.Block, error) {
	b := &block.Block{}
	err := row.Scan(
		&b.ID, &b.AssociationID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt,
		&b.AssociationName, &b.ApartmentsCount,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}
