package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation  = "23505"
	invalidTextValue = "22P02"
)

// isNotFound trata ausência de linha e IDs que não são UUID válidos como
// registro inexistente
func isNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextValue
}

// isUniqueViolation verifica se o erro é violação de unicidade; constraint
// vazio aceita qualquer constraint
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// nullString converte string vazia em NULL
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeValue(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}

// where monta cláusulas WHERE com parâmetros posicionais
type where struct {
	clauses []string
	args    []any
}

// eq adiciona "column = $n" quando value não é vazio
func (w *where) eq(column, value string) {
	if value == "" {
		return
	}
	w.add(column+" = %s", value)
}

// add adiciona uma cláusula com um único parâmetro no lugar de %s
func (w *where) add(format string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf(format, fmt.Sprintf("$%d", len(w.args))))
}

// arg registra um parâmetro avulso e retorna o seu placeholder
func (w *where) arg(value any) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}
