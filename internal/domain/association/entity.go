package association

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
)

var (
	ErrNotFound     = domain.Wrap(domain.ErrNotFound, "associação não encontrada")
	ErrEmptyName    = domain.Wrap(domain.ErrValidation, "nome não pode ser vazio")
	ErrEmptyAddress = domain.Wrap(domain.ErrValidation, "endereço não pode ser vazio")
)

// Association representa uma associação de proprietários
type Association struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Contagens derivadas, preenchidas na leitura
	BlocksCount     int `json:"blocksCount"`
	ApartmentsCount int `json:"apartmentsCount"`
}

// NewAssociation cria uma nova associação
func NewAssociation(name, address, phone, email string) (*Association, error) {
	a := &Association{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := a.Update(name, address, phone, email); err != nil {
		return nil, err
	}
	a.UpdatedAt = a.CreatedAt
	return a, nil
}

// Update atualiza os dados da associação
func (a *Association) Update(name, address, phone, email string) error {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	if name == "" {
		return ErrEmptyName
	}
	if address == "" {
		return ErrEmptyAddress
	}

	a.Name = name
	a.Address = address
	a.Phone = strings.TrimSpace(phone)
	a.Email = strings.TrimSpace(email)
	a.UpdatedAt = time.Now()
	return nil
}
