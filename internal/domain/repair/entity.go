package repair

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
)

var (
	ErrNotFound          = domain.Wrap(domain.ErrNotFound, "pedido de reparo não encontrado")
	ErrEmptyDescription  = domain.Wrap(domain.ErrValidation, "descrição não pode ser vazia")
	ErrEmptyLocation     = domain.Wrap(domain.ErrValidation, "local não pode ser vazio")
	ErrEmptyApartmentID  = domain.Wrap(domain.ErrValidation, "ID do apartamento não pode ser vazio")
	ErrInvalidStatus     = domain.Wrap(domain.ErrValidation, "status de reparo inválido")
	ErrInvalidTransition = domain.Wrap(domain.ErrConflict, "transição de status não permitida")
	ErrNotEditable       = domain.Wrap(domain.ErrConflict, "pedido só pode ser editado enquanto pendente")
)

// Priority reaproveita a escala de prioridade dos anúncios
type Priority = announcement.Priority

// Status representa o andamento de um pedido de reparo
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusRejected   Status = "REJECTED"
)

// ParseStatus valida um status
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", ErrInvalidStatus
}

// transitions lista os destinos permitidos a partir de cada status
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusCompleted, StatusRejected},
}

// CanTransition informa se from -> to é permitido
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsOpen indica se o pedido ainda aguarda conclusão
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// Request representa um pedido de reparo aberto por um morador
type Request struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	ApartmentID string    `json:"apartmentId"`
	BlockID     string    `json:"blockId"`
	TenantID    string    `json:"tenantId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	TenantName      string `json:"tenantName,omitempty"`
	ApartmentNumber string `json:"apartmentNumber,omitempty"`
}

// NewRequest cria um pedido de reparo PENDING
func NewRequest(apartmentID, blockID, description, location string, priority Priority, tenantID string) (*Request, error) {
	if apartmentID == "" {
		return nil, ErrEmptyApartmentID
	}
	now := time.Now()
	r := &Request{
		ID:          uuid.New().String(),
		ApartmentID: apartmentID,
		BlockID:     blockID,
		Status:      StatusPending,
		TenantID:    tenantID,
		CreatedAt:   now,
	}
	if err := r.edit(description, location, priority); err != nil {
		return nil, err
	}
	r.UpdatedAt = now
	return r, nil
}

// Edit altera descrição, local e prioridade; só é permitido enquanto PENDING
func (r *Request) Edit(description, location string, priority Priority) error {
	if r.Status != StatusPending {
		return ErrNotEditable
	}
	return r.edit(description, location, priority)
}

func (r *Request) edit(description, location string, priority Priority) error {
	description = strings.TrimSpace(description)
	location = strings.TrimSpace(location)
	if description == "" {
		return ErrEmptyDescription
	}
	if location == "" {
		return ErrEmptyLocation
	}
	p, err := announcement.ParsePriority(string(priority))
	if err != nil {
		return err
	}

	r.Description = description
	r.Location = location
	r.Priority = p
	r.UpdatedAt = time.Now()
	return nil
}

// SetPriority altera apenas a prioridade, em qualquer status aberto
func (r *Request) SetPriority(priority Priority) error {
	p, err := announcement.ParsePriority(string(priority))
	if err != nil {
		return err
	}
	r.Priority = p
	r.UpdatedAt = time.Now()
	return nil
}

// TransitionTo move o pedido para o status informado
func (r *Request) TransitionTo(to Status) error {
	if r.Status == to {
		return nil
	}
	if !CanTransition(r.Status, to) {
		return ErrInvalidTransition
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return nil
}
