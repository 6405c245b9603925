// Package testutil provides test helpers for cashflow: ready-to-use stores and
// ledgers, a backend that fails on demand, and fluent transaction builders.
package testutil

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/Veraticus/cashflow/internal/ledger"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/service"
	"github.com/Veraticus/cashflow/internal/storage"
)

// Today is the fixed day used by test clocks.
var Today = model.NewDate(2024, time.June, 15)

// FixedClock returns a clock that always reports noon of day.
func FixedClock(day model.Date) func() time.Time {
	return func() time.Time {
		return day.Add(12 * time.Hour)
	}
}

// SequentialIDs returns an id generator producing "id-1", "id-2", ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

// TestDB bundles a migrated in-memory SQLite store with a ledger over it.
type TestDB struct {
	Backend *storage.SQLiteStorage
	Store   *storage.Collections
	Ledger  *ledger.Ledger
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup  func(context.Context, service.Store) error
	Transactions []model.Transaction
}

// SetupTestDB creates a new in-memory SQLite database with default data and a
// ledger using a fixed clock and sequential ids. Cleanup is automatic.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	backend, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.Close()
	})

	ctx := context.Background()
	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	store := storage.NewCollections(backend)
	if len(opts.Transactions) > 0 {
		if err := store.SetTransactions(ctx, opts.Transactions); err != nil {
			t.Fatalf("failed to seed transactions: %v", err)
		}
	}
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	l, err := ledger.Open(ctx, store, ledger.WithClock(FixedClock(Today)), ledger.WithIDGenerator(SequentialIDs()))
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}

	return &TestDB{Backend: backend, Store: store, Ledger: l, t: t}
}

// NewLedger returns a ledger over an in-memory backend with a fixed clock and
// sequential ids. Extra options are applied after the defaults.
func NewLedger(t *testing.T, opts ...ledger.Option) (*ledger.Ledger, *storage.Collections) {
	t.Helper()

	store := storage.NewCollections(storage.NewMemoryStorage())
	defaults := []ledger.Option{ledger.WithClock(FixedClock(Today)), ledger.WithIDGenerator(SequentialIDs())}
	l, err := ledger.Open(context.Background(), store, append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	return l, store
}

// MustAdd adds a transaction through the ledger or fails the test.
func (db *TestDB) MustAdd(in model.TransactionInput) model.Transaction {
	db.t.Helper()
	txn, err := db.Ledger.AddTransaction(context.Background(), in)
	if err != nil {
		db.t.Fatalf("failed to add transaction: %v", err)
	}
	return txn
}
