// Package idempotency reserva chaves de idempotência de requisições financeiras.
//
// Uma chave passa por dois estados: reservada (requisição em andamento) e
// concluída (associada ao ID do recurso criado). Reservas expiram após o TTL
// para que uma requisição interrompida não bloqueie a chave para sempre.
package idempotency

import (
	"context"
	"errors"
	"time"
)

// ErrInProgress indica que outra requisição com a mesma chave ainda está em andamento
var ErrInProgress = errors.New("requisição com a mesma chave de idempotência em andamento")

const pendingValue = "__pending__"

// Store guarda o estado das chaves de idempotência
type Store interface {
	// Reserve tenta reservar a chave. Retorna o ID já gravado quando a chave
	// foi concluída antes, ErrInProgress quando está reservada por outra requisição.
	Reserve(ctx context.Context, key string, ttl time.Duration) (resourceID string, err error)

	// Complete associa a chave ao recurso criado
	Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error

	// Release libera uma reserva após falha
	Release(ctx context.Context, key string) error
}
