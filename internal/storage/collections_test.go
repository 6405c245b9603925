package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
)

type backendFactory struct {
	open func(t *testing.T) service.Backend
	name string
}

func backends() []backendFactory {
	return []backendFactory{
		{name: "sqlite", open: func(t *testing.T) service.Backend {
			t.Helper()
			store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "cashflow.db"))
			require.NoError(t, err)
			require.NoError(t, store.Migrate(context.Background()))
			t.Cleanup(func() { _ = store.Close() })
			return store
		}},
		{name: "file", open: func(t *testing.T) service.Backend {
			t.Helper()
			store, err := NewFileStorage(t.TempDir())
			require.NoError(t, err)
			return store
		}},
		{name: "memory", open: func(t *testing.T) service.Backend {
			t.Helper()
			return NewMemoryStorage()
		}},
	}
}

func testTransaction(id string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Description: "Mercado",
		Amount:      decimal.RequireFromString("123.45"),
		Type:        model.TransactionTypeExpense,
		Category:    "5",
		Date:        model.NewDate(2024, time.March, 10),
		CreatedAt:   time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			b := bf.open(t)

			_, err := b.Load(ctx, "missing")
			assert.ErrorIs(t, err, common.ErrNotFound)

			require.NoError(t, b.Save(ctx, "k", []byte(`[1]`)))
			data, err := b.Load(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(data))

			require.NoError(t, b.Update(ctx, "k", func(cur []byte) ([]byte, error) {
				assert.Equal(t, `[1]`, string(cur))
				return []byte(`[1,2]`), nil
			}))
			require.NoError(t, b.Update(ctx, "fresh", func(cur []byte) ([]byte, error) {
				assert.Nil(t, cur)
				return []byte(`[]`), nil
			}))

			abort := assert.AnError
			err = b.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, abort })
			assert.ErrorIs(t, err, abort)
			data, err = b.Load(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(data), "aborted update must not write")

			keys, err := b.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"fresh", "k"}, keys)

			require.NoError(t, b.Delete(ctx, "k"))
			require.NoError(t, b.Delete(ctx, "k"))
			_, err = b.Load(ctx, "k")
			assert.ErrorIs(t, err, common.ErrNotFound)
		})
	}
}

func TestCategoriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			store := NewCollections(bf.open(t))

			categories := store.Categories(ctx)
			categories = append(categories, model.Category{ID: "custom", Name: "Pets", Type: model.TransactionTypeExpense, Color: "#123456"})
			require.NoError(t, store.SetCategories(ctx, categories))

			assert.Equal(t, categories, store.Categories(ctx))
		})
	}
}

func TestTransactionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, bf := range backends() {
		t.Run(bf.name, func(t *testing.T) {
			store := NewCollections(bf.open(t))

			withDue := testTransaction("a")
			withDue.DueDate = model.NewDate(2024, time.March, 20).Ptr()
			withDue.ExpenseType = model.ExpenseTypeReserve
			plain := testTransaction("b")
			plain.Type = model.TransactionTypeIncome
			plain.Category = "1"

			require.NoError(t, store.SetTransactions(ctx, []model.Transaction{withDue, plain}))

			got := store.Transactions(ctx)
			require.Len(t, got, 2)
			assert.Equal(t, withDue.ID, got[0].ID)
			require.NotNil(t, got[0].DueDate)
			assert.True(t, withDue.DueDate.Equal(*got[0].DueDate))
			assert.Equal(t, model.ExpenseTypeReserve, got[0].ExpenseType)
			assert.True(t, withDue.Amount.Equal(got[0].Amount))
			assert.True(t, withDue.CreatedAt.Equal(got[0].CreatedAt))
			assert.Nil(t, got[1].DueDate, "absent due date stays absent")
			assert.Empty(t, got[1].ExpenseType)
		})
	}
}

func TestTransactionRecordShape(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStorage()
	store := NewCollections(backend)

	require.NoError(t, store.AddTransaction(ctx, testTransaction("a")))

	raw, err := backend.Load(ctx, service.KeyTransactions)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "2024-03-10", records[0]["date"])
	assert.Equal(t, "123.45", records[0]["amount"])
	assert.NotContains(t, records[0], "dueDate")
	assert.NotContains(t, records[0], "expenseType")
}

func TestReadsLegacyNumericAmounts(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStorage()
	legacy := `[{"id":"1700000000000","description":"Luz","amount":89.9,"type":"expense",` +
		`"category":"11","date":"2024-02-01","dueDate":"2024-02-10","createdAt":"2024-02-01T12:00:00.000Z"}]`
	require.NoError(t, backend.Save(ctx, service.KeyTransactions, []byte(legacy)))

	got := NewCollections(backend).Transactions(ctx)

	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("89.9")))
	assert.True(t, got[0].HasDueDate())
}

func TestCategoriesSeeding(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStorage()
	store := NewCollections(backend)

	categories := store.Categories(ctx)
	require.Len(t, categories, 12)
	assert.Equal(t, "Salário", categories[0].Name)
	assert.Equal(t, "#22c55e", categories[0].Color)
	assert.Equal(t, "Outros", categories[11].Name)
	assert.Equal(t, model.TransactionTypeExpense, categories[11].Type)

	_, err := backend.Load(ctx, service.KeyCategories)
	require.NoError(t, err, "defaults are persisted on first read")

	t.Run("explicit empty list is not reseeded", func(t *testing.T) {
		require.NoError(t, store.SetCategories(ctx, nil))
		assert.Empty(t, store.Categories(ctx))
	})
}

func TestExpenseTypesSeedingAndSelfHeal(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds built-ins", func(t *testing.T) {
		store := NewCollections(NewMemoryStorage())
		types := store.ExpenseTypes(ctx)
		require.Len(t, types, 3)
		for _, et := range types {
			assert.True(t, et.IsDefault)
		}
		assert.Equal(t, "Devolução", types[2].Name)
	})

	t.Run("restores missing built-ins and keeps custom types", func(t *testing.T) {
		backend := NewMemoryStorage()
		stored := `[{"id":"normal","name":"Dia a dia","description":"","color":"#000000","isDefault":true},` +
			`{"id":"viagem","name":"Viagem","description":"Férias","color":"#ff0000","isDefault":false}]`
		require.NoError(t, backend.Save(ctx, service.KeyExpenseTypes, []byte(stored)))
		store := NewCollections(backend)

		types := store.ExpenseTypes(ctx)

		require.Len(t, types, 4)
		assert.Equal(t, "Dia a dia", types[0].Name, "existing built-in is not overwritten")
		assert.Equal(t, "viagem", types[1].ID)
		assert.Equal(t, "Férias", types[1].Description)
		assert.Equal(t, model.ExpenseTypeReserve, types[2].ID)
		assert.Equal(t, model.ExpenseTypeRefund, types[3].ID)

		raw, err := backend.Load(ctx, service.KeyExpenseTypes)
		require.NoError(t, err)
		var persisted []model.ExpenseType
		require.NoError(t, json.Unmarshal(raw, &persisted))
		assert.Equal(t, types, persisted)
	})
}

func TestCorruptDataFailsSoft(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStorage()
	for _, key := range []string{service.KeyTransactions, service.KeyCategories, service.KeyExpenseTypes} {
		require.NoError(t, backend.Save(ctx, key, []byte(`{not json`)))
	}
	store := NewCollections(backend)

	assert.Empty(t, store.Transactions(ctx))
	assert.Equal(t, DefaultCategories(), store.Categories(ctx))
	assert.Equal(t, DefaultExpenseTypes(), store.ExpenseTypes(ctx))

	err := store.AddTransaction(ctx, testTransaction("a"))
	assert.ErrorIs(t, err, ErrCorruptCollection)
	err = store.AddCategory(ctx, model.Category{ID: "x", Name: "X", Type: model.TransactionTypeIncome})
	assert.ErrorIs(t, err, ErrCorruptCollection)

	raw, err := backend.Load(ctx, service.KeyCategories)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw), "unreadable data is never overwritten")
}

func TestTransactionMutations(t *testing.T) {
	ctx := context.Background()
	store := NewCollections(NewMemoryStorage())

	require.NoError(t, store.AddTransaction(ctx, testTransaction("a")))
	require.NoError(t, store.AddTransaction(ctx, testTransaction("b")))

	err := store.AddTransaction(ctx, testTransaction("a"))
	assert.ErrorIs(t, err, ErrDuplicateID)

	bad := testTransaction("c")
	bad.Type = "transfer"
	assert.ErrorIs(t, store.AddTransaction(ctx, bad), model.ErrInvalidType)

	due := model.NewDate(2024, time.April, 1)
	require.NoError(t, store.UpdateTransaction(ctx, "a", model.TransactionPatch{DueDate: &due}))
	got := store.Transactions(ctx)
	require.Len(t, got, 2)
	require.True(t, got[0].HasDueDate())
	assert.True(t, due.Equal(*got[0].DueDate))

	require.NoError(t, store.UpdateTransaction(ctx, "a", model.TransactionPatch{ClearDueDate: true}))
	assert.False(t, store.Transactions(ctx)[0].HasDueDate())

	assert.ErrorIs(t, store.UpdateTransaction(ctx, "zzz", model.TransactionPatch{}), common.ErrNotFound)
	assert.ErrorIs(t, store.DeleteTransaction(ctx, "zzz"), common.ErrNotFound)

	require.NoError(t, store.DeleteTransaction(ctx, "a"))
	got = store.Transactions(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestCategoryAndExpenseTypeMutations(t *testing.T) {
	ctx := context.Background()
	store := NewCollections(NewMemoryStorage())

	require.NoError(t, store.AddCategory(ctx, model.Category{ID: "pets", Name: "Pets", Type: model.TransactionTypeExpense, Color: "#111111"}))
	assert.Len(t, store.Categories(ctx), 13, "adding to an empty store starts from the defaults")

	name := "Bichos"
	require.NoError(t, store.UpdateCategory(ctx, "pets", model.CategoryPatch{Name: &name}))
	require.NoError(t, store.DeleteCategory(ctx, "5"))
	categories := store.Categories(ctx)
	assert.Len(t, categories, 12)
	assert.Equal(t, "Bichos", categories[11].Name)

	require.NoError(t, store.AddExpenseType(ctx, model.ExpenseType{ID: "viagem", Name: "Viagem"}))
	color := "#abcdef"
	require.NoError(t, store.UpdateExpenseType(ctx, model.ExpenseTypeNormal, model.ExpenseTypePatch{Color: &color}))
	types := store.ExpenseTypes(ctx)
	require.Len(t, types, 4)
	assert.Equal(t, "#abcdef", types[0].Color)
	assert.True(t, types[0].IsDefault)

	require.NoError(t, store.DeleteExpenseType(ctx, "viagem"))
	assert.Len(t, store.ExpenseTypes(ctx), 3)
	assert.ErrorIs(t, store.DeleteExpenseType(ctx, "viagem"), common.ErrNotFound)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStorage()
	store := NewCollections(backend)
	require.NoError(t, store.AddTransaction(ctx, testTransaction("a")))
	require.NoError(t, backend.Save(ctx, service.KeyDeadlines, []byte(`[]`)))
	require.NoError(t, store.SetCategories(ctx, nil))

	require.NoError(t, store.Reset(ctx))

	keys, err := backend.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Empty(t, store.Transactions(ctx))
	assert.Len(t, store.Categories(ctx), 12)
}

// lockedBackend fails the first writes with SQLite's busy error.
type lockedBackend struct {
	*MemoryStorage
	failures int
}

func (l *lockedBackend) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	if l.failures > 0 {
		l.failures--
		return common.ErrDatabaseLocked
	}
	return l.MemoryStorage.Update(ctx, key, fn)
}

func TestWritesRetryLockedBackend(t *testing.T) {
	ctx := context.Background()
	backend := &lockedBackend{MemoryStorage: NewMemoryStorage(), failures: 2}
	store := NewCollections(backend, WithRetryOptions(service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
	}))

	require.NoError(t, store.AddTransaction(ctx, testTransaction("a")))
	assert.Len(t, store.Transactions(ctx), 1)

	backend.failures = 5
	err := store.AddTransaction(ctx, testTransaction("b"))
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Len(t, store.Transactions(ctx), 1)
}

func TestSQLiteMigrate(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrating twice is a no-op")

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestValidation(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = NewMemoryStorage().Load(nil, "k") //nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, err, ErrNilContext)

	err = validateCategories([]model.Category{{ID: "1", Name: "A", Type: "other"}})
	assert.ErrorIs(t, err, model.ErrInvalidType)
}
