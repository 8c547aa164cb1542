package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/hugohenrick/erp-condominio/internal/domain/repair"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const repairSelect = `
	SELECT r.id, r.description, r.location, r.priority, r.status, r.apartment_id, r.block_id,
		r.tenant_id::text, r.created_at, r.updated_at,
		COALESCE(u.first_name || ' ' || u.last_name, ''), ap.number
	FROM repair_requests r
	JOIN apartments ap ON ap.id = r.apartment_id
	JOIN blocks b ON b.id = r.block_id
	LEFT JOIN users u ON u.id = r.tenant_id`

// PostgresRepairRepository implementa repair.Repository usando PostgreSQL
type PostgresRepairRepository struct {
	db *database.PostgresDB
}

// NewPostgresRepairRepository cria uma nova instância de PostgresRepairRepository
func NewPostgresRepairRepository(db *database.PostgresDB) *PostgresRepairRepository {
	return &PostgresRepairRepository{db: db}
}

// Create implementa repair.Repository.Create
func (r *PostgresRepairRepository) Create(ctx context.Context, req *repair.Request) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO repair_requests (id, apartment_id, block_id, description, location, priority,
			status, tenant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		req.ID, req.ApartmentID, req.BlockID, req.Description, req.Location, string(req.Priority),
		string(req.Status), nullString(req.TenantID), req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir pedido de reparo: %w", err)
	}
	return nil
}

// FindByID implementa repair.Repository.FindByID
func (r *PostgresRepairRepository) FindByID(ctx context.Context, id string) (*repair.Request, error) {
	req, err := scanRepair(r.db.Pool().QueryRow(ctx, repairSelect+" WHERE r.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return nil, repair.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar pedido de reparo: %w", err)
	}
	return req, nil
}

// List implementa repair.Repository.List
func (r *PostgresRepairRepository) List(ctx context.Context, filter repair.Filter) ([]*repair.Request, error) {
	var w where
	w.eq("r.block_id", filter.BlockID)
	w.eq("r.apartment_id", filter.ApartmentID)
	w.eq("b.association_id", filter.AssociationID)
	w.eq("r.tenant_id", filter.TenantID)
	w.eq("r.status", string(filter.Status))

	rows, err := r.db.Pool().Query(ctx, repairSelect+w.String()+" ORDER BY r.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar pedidos de reparo: %w", err)
	}
	defer rows.Close()

	var list []*repair.Request
	for rows.Next() {
		req, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler pedido de reparo: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Update implementa repair.Repository.Update
func (r *PostgresRepairRepository) Update(ctx context.Context, req *repair.Request) error {
	tag, err := r.db.Pool().Exec(ctx, `
		UPDATE repair_requests SET description = $2, location = $3, priority = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		req.ID, req.Description, req.Location, string(req.Priority), string(req.Status), req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar pedido de reparo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repair.ErrNotFound
	}
	return nil
}

func scanRepair(row pgx.Row) (*repair.Request, error) {
	req := &repair.Request{}
	var priority, status string
	var tenantID *string
	err := row.Scan(
		&req.ID, &req.Description, &req.Location, &priority, &status, &req.ApartmentID, &req.BlockID,
		&tenantID, &req.CreatedAt, &req.UpdatedAt, &req.TenantName, &req.ApartmentNumber,
	)
	if err != nil {
		return nil, err
	}
	req.Priority = announcement.Priority(priority)
	req.Status = repair.Status(status)
	req.TenantID = stringValue(tenantID)
	return req, nil
}
