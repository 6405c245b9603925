package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
)

// ErrCorruptCollection is returned when a stored collection cannot be decoded
// and a mutation would otherwise overwrite it.
var ErrCorruptCollection = errors.New("stored collection is unreadable")

// Collections implements service.Store on top of a raw Backend. Every
// collection is a JSON array stored under its own key.
type Collections struct {
	backend service.Backend
	retry   service.RetryOptions
}

// CollectionsOption configures a Collections store.
type CollectionsOption func(*Collections)

// WithRetryOptions overrides the retry policy used for writes.
func WithRetryOptions(opts service.RetryOptions) CollectionsOption {
	return func(c *Collections) {
		c.retry = opts
	}
}

// NewCollections wraps backend in the typed collection store.
func NewCollections(backend service.Backend, opts ...CollectionsOption) *Collections {
	c := &Collections{
		backend: backend,
		retry:   common.DefaultRetryOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backend returns the underlying raw backend.
func (c *Collections) Backend() service.Backend {
	return c.backend
}

// Close closes the underlying backend.
func (c *Collections) Close() error {
	return c.backend.Close()
}

// Reset removes every collection, including the legacy deadlines key.
// The next read seeds defaults again.
func (c *Collections) Reset(ctx context.Context) error {
	for _, key := range []string{service.KeyTransactions, service.KeyDeadlines, service.KeyCategories, service.KeyExpenseTypes} {
		if err := c.withRetry(ctx, func() error { return c.backend.Delete(ctx, key) }); err != nil {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	slog.Info("reset all collections")
	return nil
}

// Transactions returns every stored transaction, or an empty list when the
// collection is absent or unreadable.
func (c *Collections) Transactions(ctx context.Context) []model.Transaction {
	transactions, _, err := load[model.Transaction](ctx, c.backend, service.KeyTransactions)
	if err != nil {
		slog.Warn("failed to read transactions, using empty list", "error", err)
		return []model.Transaction{}
	}
	return transactions
}

// SetTransactions replaces the transaction collection.
func (c *Collections) SetTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateTransactions(transactions); err != nil {
		return err
	}
	return c.save(ctx, service.KeyTransactions, nonNil(transactions))
}

// AddTransaction appends one transaction.
func (c *Collections) AddTransaction(ctx context.Context, transaction model.Transaction) error {
	return c.AddTransactions(ctx, []model.Transaction{transaction})
}

// AddTransactions appends several transactions in a single write.
func (c *Collections) AddTransactions(ctx context.Context, transactions []model.Transaction) error {
	return updateList(ctx, c, service.KeyTransactions, emptyList[model.Transaction], func(current []model.Transaction) ([]model.Transaction, error) {
		next := append(current, transactions...)
		if err := validateTransactions(next); err != nil {
			return nil, err
		}
		return next, nil
	})
}

// UpdateTransaction applies patch to the transaction with the given id.
// It returns common.ErrNotFound when no such transaction is stored.
func (c *Collections) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) error {
	return updateList(ctx, c, service.KeyTransactions, emptyList[model.Transaction], func(current []model.Transaction) ([]model.Transaction, error) {
		for i := range current {
			if current[i].ID != id {
				continue
			}
			updated := patch.Apply(current[i])
			if err := updated.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
			}
			current[i] = updated
			return current, nil
		}
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	})
}

// DeleteTransaction removes the transaction with the given id.
func (c *Collections) DeleteTransaction(ctx context.Context, id string) error {
	return updateList(ctx, c, service.KeyTransactions, emptyList[model.Transaction], func(current []model.Transaction) ([]model.Transaction, error) {
		return removeByID(current, id, func(t model.Transaction) string { return t.ID }, "transaction")
	})
}

// Categories returns the stored categories. The default set is seeded and
// persisted when nothing is stored yet; unreadable data yields the defaults
// without overwriting what is stored.
func (c *Collections) Categories(ctx context.Context) []model.Category {
	categories, present, err := load[model.Category](ctx, c.backend, service.KeyCategories)
	if err != nil {
		slog.Warn("failed to read categories, using defaults", "error", err)
		return DefaultCategories()
	}
	if present {
		return categories
	}

	defaults := DefaultCategories()
	if err := c.save(ctx, service.KeyCategories, defaults); err != nil {
		slog.Warn("failed to seed default categories", "error", err)
	} else {
		slog.Info("seeded default categories", "count", len(defaults))
	}
	return defaults
}

// SetCategories replaces the category collection.
func (c *Collections) SetCategories(ctx context.Context, categories []model.Category) error {
	if err := validateCategories(categories); err != nil {
		return err
	}
	return c.save(ctx, service.KeyCategories, nonNil(categories))
}

// AddCategory appends one category.
func (c *Collections) AddCategory(ctx context.Context, category model.Category) error {
	return updateList(ctx, c, service.KeyCategories, DefaultCategories, func(current []model.Category) ([]model.Category, error) {
		next := append(current, category)
		if err := validateCategories(next); err != nil {
			return nil, err
		}
		return next, nil
	})
}

// UpdateCategory applies patch to the category with the given id.
func (c *Collections) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) error {
	return updateList(ctx, c, service.KeyCategories, DefaultCategories, func(current []model.Category) ([]model.Category, error) {
		for i := range current {
			if current[i].ID != id {
				continue
			}
			current[i] = patch.Apply(current[i])
			if err := validateCategories(current); err != nil {
				return nil, err
			}
			return current, nil
		}
		return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	})
}

// DeleteCategory removes the category with the given id. Transactions that
// reference it are left as they are.
func (c *Collections) DeleteCategory(ctx context.Context, id string) error {
	return updateList(ctx, c, service.KeyCategories, DefaultCategories, func(current []model.Category) ([]model.Category, error) {
		return removeByID(current, id, func(c model.Category) string { return c.ID }, "category")
	})
}

// ExpenseTypes returns the stored expense types. Defaults are seeded when
// nothing is stored, and any built-in type missing from stored data is
// appended and persisted. Custom types are never modified.
func (c *Collections) ExpenseTypes(ctx context.Context) []model.ExpenseType {
	stored, present, err := load[model.ExpenseType](ctx, c.backend, service.KeyExpenseTypes)
	if err != nil {
		slog.Warn("failed to read expense types, using defaults", "error", err)
		return DefaultExpenseTypes()
	}

	merged, added := mergeDefaultExpenseTypes(stored)
	if present && !added {
		return merged
	}

	if err := c.save(ctx, service.KeyExpenseTypes, merged); err != nil {
		slog.Warn("failed to persist default expense types", "error", err)
	} else {
		slog.Info("stored default expense types", "count", len(merged), "seeded", !present)
	}
	return merged
}

// SetExpenseTypes replaces the expense type collection.
func (c *Collections) SetExpenseTypes(ctx context.Context, expenseTypes []model.ExpenseType) error {
	if err := validateExpenseTypes(expenseTypes); err != nil {
		return err
	}
	return c.save(ctx, service.KeyExpenseTypes, nonNil(expenseTypes))
}

// AddExpenseType appends one expense type.
func (c *Collections) AddExpenseType(ctx context.Context, expenseType model.ExpenseType) error {
	return updateList(ctx, c, service.KeyExpenseTypes, DefaultExpenseTypes, func(current []model.ExpenseType) ([]model.ExpenseType, error) {
		next, _ := mergeDefaultExpenseTypes(current)
		next = append(next, expenseType)
		if err := validateExpenseTypes(next); err != nil {
			return nil, err
		}
		return next, nil
	})
}

// UpdateExpenseType applies patch to the expense type with the given id.
func (c *Collections) UpdateExpenseType(ctx context.Context, id string, patch model.ExpenseTypePatch) error {
	return updateList(ctx, c, service.KeyExpenseTypes, DefaultExpenseTypes, func(current []model.ExpenseType) ([]model.ExpenseType, error) {
		current, _ = mergeDefaultExpenseTypes(current)
		for i := range current {
			if current[i].ID != id {
				continue
			}
			current[i] = patch.Apply(current[i])
			if err := validateExpenseTypes(current); err != nil {
				return nil, err
			}
			return current, nil
		}
		return nil, fmt.Errorf("expense type %s: %w", id, common.ErrNotFound)
	})
}

// DeleteExpenseType removes the expense type with the given id.
func (c *Collections) DeleteExpenseType(ctx context.Context, id string) error {
	return updateList(ctx, c, service.KeyExpenseTypes, DefaultExpenseTypes, func(current []model.ExpenseType) ([]model.ExpenseType, error) {
		return removeByID(current, id, func(et model.ExpenseType) string { return et.ID }, "expense type")
	})
}

func (c *Collections) withRetry(ctx context.Context, op func() error) error {
	return common.WithRetry(ctx, op, c.retry)
}

func (c *Collections) save(ctx context.Context, key string, items any) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	if err := c.withRetry(ctx, func() error { return c.backend.Save(ctx, key, data) }); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	slog.Debug("stored collection", "key", key)
	return nil
}

// load decodes the collection under key. present is false when the key has
// never been written.
func load[T any](ctx context.Context, backend service.Backend, key string) (items []T, present bool, err error) {
	data, err := backend.Load(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	items, err = decode[T](key, data)
	if err != nil {
		return nil, true, err
	}
	return items, true, nil
}

// updateList runs a read-modify-write of one collection. seed supplies the
// starting list when the key is absent. Unreadable data aborts the write.
func updateList[T any](ctx context.Context, c *Collections, key string, seed func() []T, mutate func([]T) ([]T, error)) error {
	err := c.withRetry(ctx, func() error {
		return c.backend.Update(ctx, key, func(current []byte) ([]byte, error) {
			items := seed()
			if current != nil {
				decoded, err := decode[T](key, current)
				if err != nil {
					return nil, err
				}
				items = decoded
			}

			next, err := mutate(items)
			if err != nil {
				return nil, err
			}
			return encode(next)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", key, err)
	}
	slog.Debug("updated collection", "key", key)
	return nil
}

func removeByID[T any](items []T, id string, idOf func(T) string, kind string) ([]T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			return append(items[:i:i], items[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", kind, id, common.ErrNotFound)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func emptyList[T any]() []T {
	return []T{}
}

func decode[T any](key string, data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptCollection, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encode(items any) ([]byte, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}
