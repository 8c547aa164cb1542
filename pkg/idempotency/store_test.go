package idempotency

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	key := uuid.New().String()

	id, err := s.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = s.Reserve(ctx, key, time.Minute)
	assert.ErrorIs(t, err, ErrInProgress)

	require.NoError(t, s.Complete(ctx, key, "payment-1", time.Minute))
	id, err = s.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "payment-1", id)

	other := uuid.New().String()
	_, err = s.Reserve(ctx, other, time.Minute)
	require.NoError(t, err)
	require.NoError(t, s.Release(ctx, other))
	id, err = s.Reserve(ctx, other, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	_, err := s.Reserve(context.Background(), "k", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	id, err := s.Reserve(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR não configurado")
	}
	client, err := Connect(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, "test:idempotency:"))
}

func TestRedisStoreReserveWithoutRetry(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR não configurado")
	}
	client, err := Connect(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	s := NewRedisStore(client, "test:idempotency:")
	key := uuid.New().String()
	ctx := context.Background()

	id, err := s.reserve(ctx, key, time.Minute, false)
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = s.reserve(ctx, key, time.Minute, false)
	assert.ErrorIs(t, err, ErrInProgress)
	require.NoError(t, s.Release(ctx, key))
}
