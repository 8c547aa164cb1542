package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/meter"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const meterSelect = `
	SELECT m.id, m.apartment_id, m.meter_type, m.current_reading, m.previous_reading,
		m.consumption, m.reading_date, m.created_by::text, m.created_at, ap.number
	FROM meter_readings m
	JOIN apartments ap ON ap.id = m.apartment_id
	JOIN blocks b ON b.id = ap.block_id`

// PostgresMeterRepository implementa meter.Repository usando PostgreSQL
type PostgresMeterRepository struct {
	db *database.PostgresDB
}

// NewPostgresMeterRepository cria uma nova instância de PostgresMeterRepository
func NewPostgresMeterRepository(db *database.PostgresDB) *PostgresMeterRepository {
	return &PostgresMeterRepository{db: db}
}

// Create implementa meter.Repository.Create
func (r *PostgresMeterRepository) Create(ctx context.Context, m *meter.Reading) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO meter_readings (id, apartment_id, meter_type, current_reading, previous_reading,
			consumption, reading_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ApartmentID, string(m.MeterType), m.CurrentReading, nullDecimal(m.PreviousReading),
		nullDecimal(m.Consumption), m.ReadingDate, nullString(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir leitura: %w", err)
	}
	return nil
}

// FindByID implementa meter.Repository.FindByID
func (r *PostgresMeterRepository) FindByID(ctx context.Context, id string) (*meter.Reading, error) {
	return r.findOne(ctx, meterSelect+" WHERE m.id = $1", id)
}

// FindLatest implementa meter.Repository.FindLatest
func (r *PostgresMeterRepository) FindLatest(ctx context.Context, apartmentID string, meterType meter.Type) (*meter.Reading, error) {
	return r.findOne(ctx, meterSelect+`
		WHERE m.apartment_id = $1 AND m.meter_type = $2
		ORDER BY m.reading_date DESC, m.created_at DESC LIMIT 1`, apartmentID, string(meterType))
}

func (r *PostgresMeterRepository) findOne(ctx context.Context, query string, args ...any) (*meter.Reading, error) {
	m, err := scanReading(r.db.Pool().QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, meter.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar leitura: %w", err)
	}
	return m, nil
}

// List implementa meter.Repository.List
func (r *PostgresMeterRepository) List(ctx context.Context, filter meter.Filter) ([]*meter.Reading, error) {
	var w where
	w.eq("m.apartment_id", filter.ApartmentID)
	w.eq("ap.block_id", filter.BlockID)
	w.eq("b.association_id", filter.AssociationID)
	w.eq("ap.owner_id", filter.OwnerID)
	w.eq("m.meter_type", string(filter.MeterType))

	rows, err := r.db.Pool().Query(ctx, meterSelect+w.String()+" ORDER BY m.reading_date DESC, m.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar leituras: %w", err)
	}
	defer rows.Close()

	var list []*meter.Reading
	for rows.Next() {
		m, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler leitura: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

func scanReading(row pgx.Row) (*meter.Reading, error) {
	m := &meter.Reading{}
	var meterType string
	var previous, consumption decimal.NullDecimal
	var createdBy *string
	err := row.Scan(
		&m.ID, &m.ApartmentID, &meterType, &m.CurrentReading, &previous,
		&consumption, &m.ReadingDate, &createdBy, &m.CreatedAt, &m.ApartmentNumber,
	)
	if err != nil {
		return nil, err
	}
	m.MeterType = meter.Type(meterType)
	m.PreviousReading = decimalPtr(previous)
	m.Consumption = decimalPtr(consumption)
	m.CreatedBy = stringValue(createdBy)
	return m, nil
}
