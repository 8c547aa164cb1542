package meter

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = domain.Wrap(domain.ErrNotFound, "leitura de medidor não encontrada")
	ErrInvalidType      = domain.Wrap(domain.ErrValidation, "tipo de medidor inválido")
	ErrNegativeReading  = domain.Wrap(domain.ErrValidation, "leitura não pode ser negativa")
	ErrEmptyApartmentID = domain.Wrap(domain.ErrValidation, "ID do apartamento não pode ser vazio")
	ErrEmptyReadingDate = domain.Wrap(domain.ErrValidation, "data da leitura não pode ser vazia")
)

// Type representa o tipo de medidor
type Type string

const (
	TypeWater       Type = "WATER"
	TypeGas         Type = "GAS"
	TypeElectricity Type = "ELECTRICITY"
)

// ParseType valida o tipo de medidor
func ParseType(s string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeWater:
		return TypeWater, nil
	case TypeGas:
		return TypeGas, nil
	case TypeElectricity:
		return TypeElectricity, nil
	}
	return "", ErrInvalidType
}

// Reading representa uma leitura de medidor de um apartamento
type Reading struct {
	ID              string           `json:"id"`
	ApartmentID     string           `json:"apartmentId"`
	MeterType       Type             `json:"meterType"`
	CurrentReading  decimal.Decimal  `json:"currentReading"`
	PreviousReading *decimal.Decimal `json:"previousReading,omitempty"`
	Consumption     *decimal.Decimal `json:"consumption,omitempty"`
	ReadingDate     time.Time        `json:"readingDate"`
	CreatedBy       string           `json:"createdBy,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`

	ApartmentNumber string `json:"apartmentNumber,omitempty"`
}

// NewReading cria uma leitura e calcula o consumo
func NewReading(apartmentID string, meterType Type, current decimal.Decimal, previous *decimal.Decimal, readingDate time.Time, createdBy string) (*Reading, error) {
	if apartmentID == "" {
		return nil, ErrEmptyApartmentID
	}
	if _, err := ParseType(string(meterType)); err != nil {
		return nil, err
	}
	if current.IsNegative() || (previous != nil && previous.IsNegative()) {
		return nil, ErrNegativeReading
	}
	if readingDate.IsZero() {
		return nil, ErrEmptyReadingDate
	}

	consumption, err := ComputeConsumption(current, previous)
	if err != nil {
		return nil, err
	}

	return &Reading{
		ID:              uuid.New().String(),
		ApartmentID:     apartmentID,
		MeterType:       meterType,
		CurrentReading:  current,
		PreviousReading: previous,
		Consumption:     consumption,
		ReadingDate:     readingDate,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}, nil
}

// ComputeConsumption retorna current - previous, ou nil quando não há leitura
// anterior. Consumo negativo (medidor voltou ou erro de digitação) é retornado
// como InvalidReadingError, sem truncar para zero.
func ComputeConsumption(current decimal.Decimal, previous *decimal.Decimal) (*decimal.Decimal, error) {
	if previous == nil {
		return nil, nil
	}
	consumption := current.Sub(*previous)
	if consumption.IsNegative() {
		return nil, &domain.InvalidReadingError{Current: current, Previous: *previous}
	}
	return &consumption, nil
}
