// Package service implementa os casos de uso da aplicação.
//
// Cada serviço recebe o Principal explicitamente, resolve a posição do
// recurso na hierarquia (associação, bloco, proprietário) e consulta o
// pacote policy antes de ler ou alterar qualquer dado.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// ErrInvalidDate indica data em formato não reconhecido
var ErrInvalidDate = domain.Wrap(domain.ErrValidation, "data inválida, use AAAA-MM-DD ou RFC3339")

// Option configura dependências opcionais comuns aos serviços
type Option func(*base)

type base struct {
	now func() time.Time
	log logger.Logger
}

func newBase(opts []Option) base {
	b := base{now: time.Now, log: logger.NewNop()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// WithClock substitui o relógio do servidor
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// WithLogger define o logger do serviço
func WithLogger(log logger.Logger) Option {
	return func(b *base) {
		b.log = log
	}
}

// locator resolve a posição de blocos e apartamentos na hierarquia
type locator struct {
	blocks     block.Repository
	apartments apartment.Repository
}

func (l locator) block(ctx context.Context, id string) (*block.Block, policy.Resource, error) {
	b, err := l.blocks.FindByID(ctx, id)
	if err != nil {
		return nil, policy.Resource{}, err
	}
	return b, policy.Resource{AssociationID: b.AssociationID, BlockID: b.ID}, nil
}

// apartment retorna o apartamento e o recurso correspondente; personal marca
// dados que moradores só veem quando são proprietários
func (l locator) apartment(ctx context.Context, id string, personal bool) (*apartment.Apartment, policy.Resource, error) {
	a, err := l.apartments.FindByID(ctx, id)
	if err != nil {
		return nil, policy.Resource{}, err
	}
	b, err := l.blocks.FindByID(ctx, a.BlockID)
	if err != nil {
		return nil, policy.Resource{}, err
	}
	return a, policy.Resource{
		AssociationID: b.AssociationID,
		BlockID:       b.ID,
		OwnerID:       a.OwnerID,
		Personal:      personal,
	}, nil
}

// ParseDate aceita RFC3339 ou uma data simples (AAAA-MM-DD). Datas simples
// representam o fim do dia no fuso informado, de modo que uma cota com
// vencimento em uma data só fica vencida no dia seguinte.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, int(time.Second-time.Nanosecond), loc), nil
}
