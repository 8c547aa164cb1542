package announcement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-condominio/internal/domain"
)

var (
	ErrNotFound        = domain.Wrap(domain.ErrNotFound, "anúncio não encontrado")
	ErrEmptyTitle      = domain.Wrap(domain.ErrValidation, "título não pode ser vazio")
	ErrEmptyContent    = domain.Wrap(domain.ErrValidation, "conteúdo não pode ser vazio")
	ErrEmptyBlockID    = domain.Wrap(domain.ErrValidation, "ID do bloco não pode ser vazio")
	ErrInvalidPriority = domain.Wrap(domain.ErrValidation, "prioridade inválida")
)

// Priority é a prioridade de um anúncio ou pedido de reparo
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority valida uma prioridade; vazio retorna MEDIUM
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", ErrInvalidPriority
}

// Announcement representa um aviso publicado para um bloco
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	BlockID   string    `json:"blockId"`
	Priority  Priority  `json:"priority"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`

	AuthorName string `json:"authorName,omitempty"`
	BlockName  string `json:"blockName,omitempty"`
}

// NewAnnouncement cria um novo anúncio
func NewAnnouncement(blockID, title, content string, priority Priority, authorID string) (*Announcement, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if blockID == "" {
		return nil, ErrEmptyBlockID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	priority, err := ParsePriority(string(priority))
	if err != nil {
		return nil, err
	}

	return &Announcement{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		BlockID:   blockID,
		Priority:  priority,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}, nil
}
