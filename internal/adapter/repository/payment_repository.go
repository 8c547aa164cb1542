package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const paymentSelect = `
	SELECT p.id, p.apartment_id, p.apartment_expense_id, p.expense_id, p.amount, p.payment_date,
		p.method, p.reference, COALESCE(p.idempotency_key, ''), p.created_by::text
	FROM payments p
	JOIN apartments ap ON ap.id = p.apartment_id
	JOIN blocks b ON b.id = ap.block_id`

// PostgresPaymentRepository implementa payment.Repository usando PostgreSQL
type PostgresPaymentRepository struct {
	db *database.PostgresDB
}

// NewPostgresPaymentRepository cria uma nova instância de PostgresPaymentRepository
func NewPostgresPaymentRepository(db *database.PostgresDB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// Apply implementa payment.Repository.Apply. A cota é lida com FOR UPDATE, de
// modo que pagamentos concorrentes contra a mesma cota são serializados.
func (r *PostgresPaymentRepository) Apply(ctx context.Context, apartmentExpenseID string, fn payment.ApplyFunc) (*payment.Payment, error) {
	var created *payment.Payment

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		ae := &expense.ApartmentExpense{}
		var status string
		err := tx.QueryRow(ctx, `
			SELECT id, apartment_id, expense_id, amount, paid_amount, due_date, status, paid_at,
				created_at, updated_at
			FROM apartment_expenses WHERE id = $1 FOR UPDATE`, apartmentExpenseID,
		).Scan(
			&ae.ID, &ae.ApartmentID, &ae.ExpenseID, &ae.Amount, &ae.PaidAmount, &ae.DueDate,
			&status, &ae.PaidAt, &ae.CreatedAt, &ae.UpdatedAt,
		)
		if err != nil {
			if isNotFound(err) {
				return expense.ErrAllocationNotFound
			}
			return fmt.Errorf("falha ao bloquear cota: %w", err)
		}
		ae.Status = expense.Status(status)

		p, err := fn(ae)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO payments (id, apartment_id, apartment_expense_id, expense_id, amount,
				payment_date, method, reference, idempotency_key, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.ApartmentID, p.ApartmentExpenseID, p.ExpenseID, p.Amount,
			p.PaymentDate, string(p.Method), p.Reference, nullString(p.IdempotencyKey), nullString(p.CreatedBy),
		)
		if err != nil {
			if isUniqueViolation(err, "") {
				return payment.ErrDuplicateKey
			}
			return fmt.Errorf("falha ao inserir pagamento: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE apartment_expenses SET paid_amount = $2, status = $3, paid_at = $4, updated_at = $5
			WHERE id = $1`,
			ae.ID, ae.PaidAmount, string(ae.Status), timeValue(ae.PaidAt), ae.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("falha ao atualizar cota: %w", err)
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindByID implementa payment.Repository.FindByID
func (r *PostgresPaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	return r.findOne(ctx, paymentSelect+" WHERE p.id = $1", id)
}

// FindByIdempotencyKey implementa payment.Repository.FindByIdempotencyKey
func (r *PostgresPaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*payment.Payment, error) {
	return r.findOne(ctx, paymentSelect+" WHERE p.idempotency_key = $1", key)
}

func (r *PostgresPaymentRepository) findOne(ctx context.Context, query string, args ...any) (*payment.Payment, error) {
	p, err := scanPayment(r.db.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, payment.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar pagamento: %w", err)
	}
	return p, nil
}

// List implementa payment.Repository.List
func (r *PostgresPaymentRepository) List(ctx context.Context, filter payment.Filter) ([]*payment.Payment, error) {
	var w where
	w.eq("p.apartment_id", filter.ApartmentID)
	w.eq("ap.block_id", filter.BlockID)
	w.eq("b.association_id", filter.AssociationID)
	w.eq("ap.owner_id", filter.OwnerID)

	rows, err := r.db.Pool().Query(ctx, paymentSelect+w.String()+" ORDER BY p.payment_date DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	var list []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler pagamento: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	p := &payment.Payment{}
	var method string
	var createdBy *string
	err := row.Scan(
		&p.ID, &p.ApartmentID, &p.ApartmentExpenseID, &p.ExpenseID, &p.Amount, &p.PaymentDate,
		&method, &p.Reference, &p.IdempotencyKey, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	p.Method = payment.Method(method)
	p.CreatedBy = stringValue(createdBy)
	return p, nil
}
