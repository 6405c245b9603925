package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Veraticus/cashflow/internal/common"
)

const fileExt = ".json"

// FileStorage implements service.Backend with one JSON document per key in a
// directory. Writes go to a temporary file that is renamed into place, so a
// reader never sees a half-written collection.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates the directory if needed and returns a backend rooted there.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the storage directory.
func (f *FileStorage) Dir() string {
	return f.dir
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

// Load returns the document stored under key.
func (f *FileStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(key)
}

func (f *FileStorage) read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("collection %s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return data, nil
}

// Save replaces the document stored under key.
func (f *FileStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(key, data)
}

func (f *FileStorage) write(key string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync collection %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close collection %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", key, err)
	}

	slog.Debug("saved collection", "key", key, "bytes", len(data), "dir", f.dir)
	return nil
}

// Update runs fn on the current document and stores its result while holding
// the backend lock. fn receives nil when the key is absent.
func (f *FileStorage) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read(key)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	return f.write(key, next)
}

// Delete removes the document stored under key.
func (f *FileStorage) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete collection %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored collection key in alphabetical order.
func (f *FileStorage) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; files are closed after every operation.
func (f *FileStorage) Close() error {
	return nil
}
