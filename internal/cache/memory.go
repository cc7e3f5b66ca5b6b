package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in a process-local map. Entries are replaced
// wholesale under the lock, so a concurrent reader sees either the old or
// the new complete value.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{entries: make(map[string]Entry[T])}
}

func (m *MemoryStore[T]) Load(_ context.Context, key string) (Entry[T], bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *MemoryStore[T]) Save(_ context.Context, key string, e Entry[T]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}
