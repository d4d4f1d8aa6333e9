package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore keeps encoded values in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	data, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, decode(key, data, dst)
}

func (m *MemoryStore) Save(_ context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Update holds the store lock for the duration of fn, so memory updates never
// need a retry.
func (m *MemoryStore) Update(ctx context.Context, keys []string, fn func(ctx context.Context, tx KV) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{store: m, keys: keys, staged: make(map[string][]byte, len(keys))}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for k, v := range tx.staged {
		m.data[k] = v
	}
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Raw returns the encoded value under key, for tests and debugging.
func (m *MemoryStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	return slices.Clone(data), ok
}

// SetRaw stores bytes under key without encoding them.
func (m *MemoryStore) SetRaw(key string, data []byte) {
	m.mu.Lock()
	m.data[key] = slices.Clone(data)
	m.mu.Unlock()
}

// memoryTx reads through to the locked store and buffers writes.
type memoryTx struct {
	store  *MemoryStore
	keys   []string
	staged map[string][]byte
}

func (t *memoryTx) Load(_ context.Context, key string, dst any) (bool, error) {
	if err := t.check(key); err != nil {
		return false, err
	}
	data, ok := t.staged[key]
	if !ok {
		data, ok = t.store.data[key]
	}
	if !ok {
		return false, nil
	}
	return true, decode(key, data, dst)
}

func (t *memoryTx) Save(_ context.Context, key string, value any) error {
	if err := t.check(key); err != nil {
		return err
	}
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	t.staged[key] = data
	return nil
}

func (t *memoryTx) check(key string) error {
	if !slices.Contains(t.keys, key) {
		return fmt.Errorf("key %q not declared in update", key)
	}
	return nil
}
