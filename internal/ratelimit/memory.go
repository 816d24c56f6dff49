package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default single-process store: a mutex-guarded map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *MemoryStore) Put(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Len(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Sweep removes entries whose window and lockout have both elapsed. It is an
// amortized memory bound, not a precise TTL eviction.
func (m *MemoryStore) Sweep(_ context.Context, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, e := range m.entries {
		if e.Expired(now) {
			delete(m.entries, key)
		}
	}
}
