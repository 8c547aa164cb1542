package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implementa Store sobre SETNX do Redis
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore cria um RedisStore. O prefixo separa as chaves de outros usos do Redis.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Connect abre o cliente e verifica a conexão com PING
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("falha ao conectar ao Redis: %w", err)
	}
	return client, nil
}

// Reserve implementa Store
func (s *RedisStore) Reserve(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return s.reserve(ctx, key, ttl, true)
}

func (s *RedisStore) reserve(ctx context.Context, key string, ttl time.Duration, retry bool) (string, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, pendingValue, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("falha ao reservar chave de idempotência: %w", err)
	}
	if ok {
		return "", nil
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// Expirou entre o SETNX e o GET; tenta de novo uma vez
		if retry {
			return s.reserve(ctx, key, ttl, false)
		}
		return "", ErrInProgress
	}
	if err != nil {
		return "", fmt.Errorf("falha ao ler chave de idempotência: %w", err)
	}
	if value == pendingValue {
		return "", ErrInProgress
	}
	return value, nil
}

// Complete implementa Store
func (s *RedisStore) Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, resourceID, ttl).Err(); err != nil {
		return fmt.Errorf("falha ao concluir chave de idempotência: %w", err)
	}
	return nil
}

// Release implementa Store
func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("falha ao liberar chave de idempotência: %w", err)
	}
	return nil
}
