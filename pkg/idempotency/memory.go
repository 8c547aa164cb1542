package idempotency

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore implementa Store em memória, para instância única e testes
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore cria um MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

func (s *MemoryStore) get(key string) (entry, bool) {
	e, ok := s.entries[key]
	if ok && !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return entry{}, false
	}
	return e, ok
}

// Reserve implementa Store
func (s *MemoryStore) Reserve(_ context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.get(key); ok {
		if e.value == pendingValue {
			return "", ErrInProgress
		}
		return e.value, nil
	}
	s.entries[key] = entry{value: pendingValue, expiresAt: s.now().Add(ttl)}
	return "", nil
}

// Complete implementa Store
func (s *MemoryStore) Complete(_ context.Context, key, resourceID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: resourceID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Release implementa Store
func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
