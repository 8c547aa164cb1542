package apartment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = domain.Wrap(domain.ErrNotFound, "apartamento não encontrado")
	ErrEmptyNumber     = domain.Wrap(domain.ErrValidation, "número do apartamento não pode ser vazio")
	ErrEmptyBlockID    = domain.Wrap(domain.ErrValidation, "ID do bloco não pode ser vazio")
	ErrInvalidFloor    = domain.Wrap(domain.ErrValidation, "andar não pode ser negativo")
	ErrInvalidArea     = domain.Wrap(domain.ErrValidation, "área deve ser positiva")
	ErrDuplicateNumber = domain.Wrap(domain.ErrConflict, "já existe um apartamento com este número no bloco")
)

// Apartment representa uma unidade dentro de um bloco
type Apartment struct {
	ID        string          `json:"id"`
	BlockID   string          `json:"blockId"`
	Number    string          `json:"number"`
	Floor     int             `json:"floor"`
	Area      decimal.Decimal `json:"area"` // metros quadrados
	OwnerID   string          `json:"ownerId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Visões derivadas
	BlockName string `json:"blockName"`
	OwnerName string `json:"ownerName,omitempty"`
}

// NewApartment cria um novo apartamento
func NewApartment(blockID, number string, floor int, area decimal.Decimal, ownerID string) (*Apartment, error) {
	if blockID == "" {
		return nil, ErrEmptyBlockID
	}

	a := &Apartment{
		ID:        uuid.New().String(),
		BlockID:   blockID,
		CreatedAt: time.Now(),
	}
	if err := a.Update(number, floor, area, ownerID); err != nil {
		return nil, err
	}
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

// Update atualiza os dados do apartamento
func (a *Apartment) Update(number string, floor int, area decimal.Decimal, ownerID string) error {
	number = strings.TrimSpace(number)

	if number == "" {
		return ErrEmptyNumber
	}
	if floor < 0 {
		return ErrInvalidFloor
	}
	if !area.IsPositive() {
		return ErrInvalidArea
	}

	a.Number = number
	a.Floor = floor
	a.Area = area
	a.OwnerID = ownerID
	a.UpdatedAt = time.Now()
	return nil
}

// IsOccupied indica se o apartamento tem proprietário vinculado
func (a *Apartment) IsOccupied() bool {
	return a.OwnerID != ""
}

// IsOwnedBy verifica se o usuário é o proprietário do apartamento
func (a *Apartment) IsOwnedBy(userID string) bool {
	return userID != "" && a.OwnerID == userID
}
