package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/dashboard"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
)

// PostgresDashboardRepository implementa dashboard.Repository usando PostgreSQL
type PostgresDashboardRepository struct {
	db *database.PostgresDB
}

// NewPostgresDashboardRepository cria uma nova instância de PostgresDashboardRepository
func NewPostgresDashboardRepository(db *database.PostgresDB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func scopeWhere(s dashboard.Scope, associationColumn string, extra ...string) *where {
	w := &where{clauses: extra}
	w.eq(associationColumn, s.AssociationID)
	w.eq("b.id", s.BlockID)
	w.eq("ap.owner_id", s.OwnerID)
	return w
}

// Counts implementa dashboard.Repository.Counts
func (r *PostgresDashboardRepository) Counts(ctx context.Context, s dashboard.Scope) (dashboard.Counts, error) {
	var c dashboard.Counts
	pool := r.db.Pool()

	queries := []struct {
		name string
		sql  string
		w    *where
		dest []any
	}{
		{
			name: "associações",
			sql: `SELECT COUNT(DISTINCT a.id) FROM associations a
				LEFT JOIN blocks b ON b.association_id = a.id
				LEFT JOIN apartments ap ON ap.block_id = b.id`,
			w:    scopeWhere(s, "a.id"),
			dest: []any{&c.Associations},
		},
		{
			name: "blocos",
			sql: `SELECT COUNT(DISTINCT b.id) FROM blocks b
				LEFT JOIN apartments ap ON ap.block_id = b.id`,
			w:    scopeWhere(s, "b.association_id"),
			dest: []any{&c.Blocks},
		},
		{
			name: "apartamentos",
			sql: `SELECT COUNT(*), COUNT(ap.owner_id) FROM apartments ap
				JOIN blocks b ON b.id = ap.block_id`,
			w:    scopeWhere(s, "b.association_id"),
			dest: []any{&c.Apartments, &c.OccupiedApartments},
		},
		{
			name: "despesas",
			sql: `SELECT COUNT(DISTINCT e.id) FROM expenses e
				JOIN blocks b ON b.id = e.block_id
				LEFT JOIN apartment_expenses ae ON ae.expense_id = e.id
				LEFT JOIN apartments ap ON ap.id = ae.apartment_id`,
			w:    scopeWhere(s, "b.association_id"),
			dest: []any{&c.Expenses},
		},
		{
			name: "cotas pendentes",
			sql: `SELECT COUNT(*) FROM apartment_expenses ae
				JOIN apartments ap ON ap.id = ae.apartment_id
				JOIN blocks b ON b.id = ap.block_id`,
			w:    scopeWhere(s, "b.association_id", "ae.status <> 'PAID'"),
			dest: []any{&c.PendingAllocations},
		},
		{
			name: "reparos abertos",
			sql: `SELECT COUNT(*) FROM repair_requests r
				JOIN apartments ap ON ap.id = r.apartment_id
				JOIN blocks b ON b.id = ap.block_id`,
			w:    scopeWhere(s, "b.association_id", "r.status IN ('PENDING', 'IN_PROGRESS')"),
			dest: []any{&c.OpenRepairs},
		},
		{
			name: "receita",
			sql: `SELECT COALESCE(SUM(p.amount), 0) FROM payments p
				JOIN apartments ap ON ap.id = p.apartment_id
				JOIN blocks b ON b.id = ap.block_id`,
			w:    scopeWhere(s, "b.association_id"),
			dest: []any{&c.Revenue},
		},
	}

	for _, q := range queries {
		if err := pool.QueryRow(ctx, q.sql+q.w.String(), q.w.args...).Scan(q.dest...); err != nil {
			return dashboard.Counts{}, fmt.Errorf("falha ao contar %s: %w", q.name, err)
		}
	}
	return c, nil
}
