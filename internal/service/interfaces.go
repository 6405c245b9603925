// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
)

// Collection keys. Each collection is stored as one JSON array under its key.
const (
	KeyTransactions = "finance_app_transactions"
	KeyCategories   = "finance_app_categories"
	KeyExpenseTypes = "finance_app_expense_types"
	// KeyDeadlines is reserved for data written by older versions.
	// Deadlines are derived from transactions and never stored.
	KeyDeadlines = "finance_app_deadlines"
)

// Backend is a key-value store of raw collection documents.
// Load returns common.ErrNotFound when nothing is stored under key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	// Update performs an atomic read-modify-write. fn receives nil when the
	// key is absent; an error from fn aborts the write.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Store defines the contract for our persistence layer. Reads never fail:
// absent or unreadable collections come back empty or seeded, with a warning
// logged. Writes replace the whole collection and report failures.
type Store interface {
	// Transaction operations
	Transactions(ctx context.Context) []model.Transaction
	SetTransactions(ctx context.Context, transactions []model.Transaction) error
	AddTransaction(ctx context.Context, transaction model.Transaction) error
	AddTransactions(ctx context.Context, transactions []model.Transaction) error
	UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) error
	DeleteTransaction(ctx context.Context, id string) error

	// Category operations
	Categories(ctx context.Context) []model.Category
	SetCategories(ctx context.Context, categories []model.Category) error
	AddCategory(ctx context.Context, category model.Category) error
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) error

	// Expense type operations
	ExpenseTypes(ctx context.Context) []model.ExpenseType
	SetExpenseTypes(ctx context.Context, expenseTypes []model.ExpenseType) error
	AddExpenseType(ctx context.Context, expenseType model.ExpenseType) error
	UpdateExpenseType(ctx context.Context, id string, patch model.ExpenseTypePatch) error
	DeleteExpenseType(ctx context.Context, id string) error

	// Database management
	Reset(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
