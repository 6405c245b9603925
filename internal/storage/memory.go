package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Veraticus/cashflow/internal/common"
)

// MemoryStorage implements service.Backend in process memory.
// Nothing survives Close; it backs tests and throwaway sessions.
type MemoryStorage struct {
	data map[string][]byte
	mu   sync.Mutex
}

// NewMemoryStorage returns an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Load returns a copy of the document stored under key.
func (m *MemoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", key, common.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data under key.
func (m *MemoryStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Update runs fn on the current document and stores the result under the lock.
func (m *MemoryStorage) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var current []byte
	if data, ok := m.data[key]; ok {
		current = append([]byte(nil), data...)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), next...)
	return nil
}

// Delete removes key.
func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists the stored keys in alphabetical order.
func (m *MemoryStorage) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close discards every document.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}
