package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in a map for the life of the process.
// Useful for watch mode, where the same icons are processed repeatedly.
type MemoryStore struct {
	prefix string
	items  map[string][]byte
	mu     sync.RWMutex
	closed bool
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{prefix: prefix, items: make(map[string][]byte)}
}

func (m *MemoryStore) prefixedKey(key string) string {
	return m.prefix + key
}

// Get retrieves a value by key.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	value, ok := m.items[m.prefixedKey(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores a value.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.items[m.prefixedKey(key)] = append([]byte(nil), value...)
	return nil
}

// Delete removes a key.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.items, m.prefixedKey(key))
	return nil
}

// Len returns the number of stored entries
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close drops all entries.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.closed = true
	m.items = nil
	return nil
}
