package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const expenseSelect = `
	SELECT e.id, e.block_id, e.description, e.amount, e.category, e.due_date,
		e.distribution_policy, e.distributed_at, e.created_by::text, e.created_at, e.updated_at,
		b.name, COALESCE(s.total, 0), COALESCE(s.paid, 0), COALESCE(s.overdue, 0)
	FROM expenses e
	JOIN blocks b ON b.id = e.block_id
	LEFT JOIN (
		SELECT expense_id,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'PAID') AS paid,
			COUNT(*) FILTER (WHERE status = 'OVERDUE') AS overdue
		FROM apartment_expenses
		GROUP BY expense_id
	) s ON s.expense_id = e.id`

const allocationSelect = `
	SELECT ae.id, ae.apartment_id, ae.expense_id, ae.amount, ae.paid_amount, ae.due_date,
		ae.status, ae.paid_at, ae.created_at, ae.updated_at, ap.number,
		e.id, e.block_id, e.description, e.amount, e.category, e.due_date,
		e.distribution_policy, e.distributed_at, e.created_by::text, e.created_at, e.updated_at,
		b.name
	FROM apartment_expenses ae
	JOIN apartments ap ON ap.id = ae.apartment_id
	JOIN expenses e ON e.id = ae.expense_id
	JOIN blocks b ON b.id = e.block_id`

// PostgresExpenseRepository implementa expense.Repository usando PostgreSQL
type PostgresExpenseRepository struct {
	db *database.PostgresDB
}

// NewPostgresExpenseRepository cria uma nova instância de PostgresExpenseRepository
func NewPostgresExpenseRepository(db *database.PostgresDB) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{db: db}
}

// Create implementa expense.Repository.Create
func (r *PostgresExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	if err := insertExpense(ctx, r.db.Pool(), e); err != nil {
		return err
	}
	return nil
}

// CreateDistributed implementa expense.Repository.CreateDistributed
func (r *PostgresExpenseRepository) CreateDistributed(ctx context.Context, e *expense.Expense, allocations []*expense.ApartmentExpense) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := insertExpense(ctx, tx, e); err != nil {
			return err
		}
		return insertAllocations(ctx, tx, allocations)
	})
}

// SaveAllocations implementa expense.Repository.SaveAllocations.
// A linha da despesa fica bloqueada até o commit, serializando distribuições concorrentes.
func (r *PostgresExpenseRepository) SaveAllocations(ctx context.Context, e *expense.Expense, allocations []*expense.ApartmentExpense) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		var distributedAt *time.Time
		err := tx.QueryRow(ctx, "SELECT distributed_at FROM expenses WHERE id = $1 FOR UPDATE", e.ID).Scan(&distributedAt)
		if err != nil {
			if isNotFound(err) {
				return expense.ErrNotFound
			}
			return fmt.Errorf("falha ao bloquear despesa: %w", err)
		}
		if distributedAt != nil {
			return domain.ErrAlreadyDistributed
		}

		if err := insertAllocations(ctx, tx, allocations); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			"UPDATE expenses SET distribution_policy = $2, distributed_at = $3, updated_at = $4 WHERE id = $1",
			e.ID, string(e.DistributionPolicy), e.DistributedAt, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("falha ao marcar despesa como distribuída: %w", err)
		}
		return nil
	})
}

func insertExpense(ctx context.Context, q database.Querier, e *expense.Expense) error {
	_, err := q.Exec(ctx, `
		INSERT INTO expenses (id, block_id, description, amount, category, due_date,
			distribution_policy, distributed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.BlockID, e.Description, e.Amount, string(e.Category), e.DueDate,
		nullString(string(e.DistributionPolicy)), timeValue(e.DistributedAt), nullString(e.CreatedBy),
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir despesa: %w", err)
	}
	return nil
}

func insertAllocations(ctx context.Context, q database.Querier, allocations []*expense.ApartmentExpense) error {
	for _, a := range allocations {
		_, err := q.Exec(ctx, `
			INSERT INTO apartment_expenses (id, apartment_id, expense_id, amount, paid_amount,
				due_date, status, paid_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			a.ID, a.ApartmentID, a.ExpenseID, a.Amount, a.PaidAmount,
			a.DueDate, string(a.Status), timeValue(a.PaidAt), a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, "") {
				return domain.ErrAlreadyDistributed
			}
			return fmt.Errorf("falha ao inserir cota: %w", err)
		}
	}
	return nil
}

// FindByID implementa expense.Repository.FindByID
func (r *PostgresExpenseRepository) FindByID(ctx context.Context, id string) (*expense.Expense, error) {
	e, err := scanExpenseWithSummary(r.db.Pool().QueryRow(ctx, expenseSelect+" WHERE e.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return nil, expense.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar despesa: %w", err)
	}
	return e, nil
}

// List implementa expense.Repository.List
func (r *PostgresExpenseRepository) List(ctx context.Context, filter expense.Filter) ([]*expense.Expense, error) {
	var w where
	w.eq("e.block_id", filter.BlockID)
	w.eq("b.association_id", filter.AssociationID)

	rows, err := r.db.Pool().Query(ctx, expenseSelect+w.String()+" ORDER BY e.due_date DESC, e.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar despesas: %w", err)
	}
	defer rows.Close()

	var list []*expense.Expense
	for rows.Next() {
		e, err := scanExpenseWithSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler despesa: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// FindAllocation implementa expense.Repository.FindAllocation
func (r *PostgresExpenseRepository) FindAllocation(ctx context.Context, id string) (*expense.ApartmentExpense, error) {
	return r.findAllocation(ctx, allocationSelect+" WHERE ae.id = $1", id)
}

// FindAllocationByPair implementa expense.Repository.FindAllocationByPair
func (r *PostgresExpenseRepository) FindAllocationByPair(ctx context.Context, apartmentID, expenseID string) (*expense.ApartmentExpense, error) {
	return r.findAllocation(ctx, allocationSelect+" WHERE ae.apartment_id = $1 AND ae.expense_id = $2", apartmentID, expenseID)
}

func (r *PostgresExpenseRepository) findAllocation(ctx context.Context, query string, args ...any) (*expense.ApartmentExpense, error) {
	a, err := scanAllocationWithExpense(r.db.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, expense.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("falha ao buscar cota: %w", err)
	}
	return a, nil
}

// ListAllocations implementa expense.Repository.ListAllocations
func (r *PostgresExpenseRepository) ListAllocations(ctx context.Context, filter expense.AllocationFilter) ([]*expense.ApartmentExpense, error) {
	var w where
	w.eq("ae.apartment_id", filter.ApartmentID)
	w.eq("ae.expense_id", filter.ExpenseID)
	w.eq("e.block_id", filter.BlockID)
	w.eq("b.association_id", filter.AssociationID)
	w.eq("ap.owner_id", filter.OwnerID)
	w.eq("ae.status", string(filter.Status))

	rows, err := r.db.Pool().Query(ctx, allocationSelect+w.String()+" ORDER BY ae.due_date DESC, ap.number", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar cotas: %w", err)
	}
	defer rows.Close()

	var list []*expense.ApartmentExpense
	for rows.Next() {
		a, err := scanAllocationWithExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler cota: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// MarkOverdue implementa expense.Repository.MarkOverdue. A condição sobre o
// status garante que uma cota quitada por uma transação concorrente não é tocada.
func (r *PostgresExpenseRepository) MarkOverdue(ctx context.Context, associationID string, asOf time.Time) (int64, error) {
	query := `
		UPDATE apartment_expenses SET status = 'OVERDUE', updated_at = now()
		WHERE status = 'PENDING' AND due_date < $1`
	args := []any{asOf}
	if associationID != "" {
		query += ` AND expense_id IN (
			SELECT e.id FROM expenses e JOIN blocks b ON b.id = e.block_id
			WHERE b.association_id = $2)`
		args = append(args, associationID)
	}

	tag, err := r.db.Pool().Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("falha ao marcar cotas vencidas: %w", err)
	}
	return tag.RowsAffected(), nil
}

// expenseDest retorna os destinos de Scan das colunas base da despesa
func expenseDest(e *expense.Expense, category, policy **string, createdBy **string) []any {
	return []any{
		&e.ID, &e.BlockID, &e.Description, &e.Amount, category, &e.DueDate,
		policy, &e.DistributedAt, createdBy, &e.CreatedAt, &e.UpdatedAt,
	}
}

func fillExpense(e *expense.Expense, category, policy, createdBy *string) {
	e.Category = expense.Category(stringValue(category))
	e.DistributionPolicy = expense.Policy(stringValue(policy))
	e.CreatedBy = stringValue(createdBy)
}

func scanExpenseWithSummary(row pgx.Row) (*expense.Expense, error) {
	e := &expense.Expense{}
	var category, policy, createdBy *string
	dest := expenseDest(e, &category, &policy, &createdBy)
	dest = append(dest, &e.BlockName, &e.Summary.Total, &e.Summary.Paid, &e.Summary.Overdue)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	fillExpense(e, category, policy, createdBy)
	return e, nil
}

func scanAllocationWithExpense(row pgx.Row) (*expense.ApartmentExpense, error) {
	a := &expense.ApartmentExpense{Expense: &expense.Expense{}}
	var status string
	var category, policy, createdBy *string

	dest := []any{
		&a.ID, &a.ApartmentID, &a.ExpenseID, &a.Amount, &a.PaidAmount, &a.DueDate,
		&status, &a.PaidAt, &a.CreatedAt, &a.UpdatedAt, &a.ApartmentNumber,
	}
	dest = append(dest, expenseDest(a.Expense, &category, &policy, &createdBy)...)
	dest = append(dest, &a.Expense.BlockName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	a.Status = expense.Status(status)
	fillExpense(a.Expense, category, policy, createdBy)
	return a, nil
}
