package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, first_name, last_name, password, role, status,
	association_id::text, block_id::text, created_at, updated_at`

// PostgresUserRepository implementa user.Repository usando PostgreSQL
type PostgresUserRepository struct {
	db *database.PostgresDB
}

// NewPostgresUserRepository cria uma nova instância de PostgresUserRepository
func NewPostgresUserRepository(db *database.PostgresDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create implementa user.Repository.Create
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO users (id, email, first_name, last_name, password, role, status,
			association_id, block_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Password, string(u.Role), string(u.Status),
		nullString(u.AssociationID), nullString(u.BlockID), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("falha ao inserir usuário: %w", err)
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(email))
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u, err := scanUser(r.db.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return u, nil
}

// List implementa user.Repository.List
func (r *PostgresUserRepository) List(ctx context.Context, filter user.Filter) ([]*user.User, int, error) {
	var w where
	w.eq("association_id", filter.AssociationID)
	w.eq("block_id", filter.BlockID)
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := w.arg("%" + strings.ToLower(s) + "%")
		w.clauses = append(w.clauses, fmt.Sprintf(
			"(lower(email) LIKE %[1]s OR lower(first_name) LIKE %[1]s OR lower(last_name) LIKE %[1]s)", p))
	}

	var total int
	if err := r.db.Pool().QueryRow(ctx, "SELECT COUNT(*) FROM users"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("falha ao contar usuários: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf("SELECT %s FROM users%s ORDER BY last_name, first_name LIMIT %s OFFSET %s",
		userColumns, w.String(), w.arg(limit), w.arg(filter.Offset))

	rows, err := r.db.Pool().Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	defer rows.Close()

	var list []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("falha ao ler usuário: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Update implementa user.Repository.Update
func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Pool().Exec(ctx, `
		UPDATE users SET email = $2, first_name = $3, last_name = $4, password = $5, role = $6,
			status = $7, association_id = $8, block_id = $9, updated_at = $10
		WHERE id = $1`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Password, string(u.Role), string(u.Status),
		nullString(u.AssociationID), nullString(u.BlockID), u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("falha ao atualizar usuário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	var role, status string
	var associationID, blockID *string
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Password, &role, &status,
		&associationID, &blockID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	u.Status = user.Status(status)
	u.AssociationID = stringValue(associationID)
	u.BlockID = stringValue(blockID)
	return u, nil
}
