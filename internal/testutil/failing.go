package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/cashflow/internal/service"
	"github.com/Veraticus/cashflow/internal/storage"
)

// ErrInjected is returned by a FailingBackend while it is failing.
var ErrInjected = errors.New("injected storage failure")

// FailingBackend wraps an in-memory backend and fails every write while
// FailWrites is set. Reads keep working.
type FailingBackend struct {
	*storage.MemoryStorage
	failWrites bool
	mu         sync.Mutex
}

var _ service.Backend = (*FailingBackend)(nil)

// NewFailingBackend returns a backend that succeeds until told otherwise.
func NewFailingBackend() *FailingBackend {
	return &FailingBackend{MemoryStorage: storage.NewMemoryStorage()}
}

// FailWrites switches write failures on or off.
func (f *FailingBackend) FailWrites(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = fail
}

func (f *FailingBackend) failing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWrites
}

// Save fails while writes are failing.
func (f *FailingBackend) Save(ctx context.Context, key string, data []byte) error {
	if f.failing() {
		return ErrInjected
	}
	return f.MemoryStorage.Save(ctx, key, data)
}

// Update fails while writes are failing.
func (f *FailingBackend) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	if f.failing() {
		return ErrInjected
	}
	return f.MemoryStorage.Update(ctx, key, fn)
}

// Delete fails while writes are failing.
func (f *FailingBackend) Delete(ctx context.Context, key string) error {
	if f.failing() {
		return ErrInjected
	}
	return f.MemoryStorage.Delete(ctx, key)
}
