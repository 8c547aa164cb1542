package block

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
)

var (
	ErrNotFound           = domain.Wrap(domain.ErrNotFound, "bloco não encontrado")
	ErrEmptyName          = domain.Wrap(domain.ErrValidation, "nome do bloco não pode ser vazio")
	ErrEmptyAddress       = domain.Wrap(domain.ErrValidation, "endereço do bloco não pode ser vazio")
	ErrEmptyAssociationID = domain.Wrap(domain.ErrValidation, "ID da associação não pode ser vazio")
)

// Block representa um prédio (bloc) dentro de uma associação
type Block struct {
	ID            string    `json:"id"`
	AssociationID string    `json:"associationId"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Visões derivadas, não autoritativas
	AssociationName string `json:"associationName"`
	ApartmentsCount int    `json:"apartmentsCount"`
}

// NewBlock cria um novo bloco
func NewBlock(associationID, name, address string) (*Block, error) {
	if associationID == "" {
		return nil, ErrEmptyAssociationID
	}

	b := &Block{
		ID:            uuid.New().String(),
		AssociationID: associationID,
		CreatedAt:     time.Now(),
	}
	if err := b.Update(name, address); err != nil {
		return nil, err
	}
	b.UpdatedAt = b.CreatedAt
	return b, nil
}

// Update atualiza nome e endereço do bloco
func (b *Block) Update(name, address string) error {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if name == "" {
		return ErrEmptyName
	}
	if address == "" {
		return ErrEmptyAddress
	}

	b.Name = name
	b.Address = address
	b.UpdatedAt = time.Now()
	return nil
}
