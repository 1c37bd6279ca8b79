package storage

import (
	"context"
	"sync"
)

// MemoryAdapter is an in-process IdempotencyStore for tests and for running
// a terminal without Redis. Reservations do not survive a restart.
type MemoryAdapter struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{keys: make(map[string]struct{})}
}

func (m *MemoryAdapter) Reserve(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.keys[key]; exists {
		return false, nil
	}
	m.keys[key] = struct{}{}
	return true, nil
}

func (m *MemoryAdapter) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}
