// Package ledger is the single entry point for changing financial data.
//
// A Ledger keeps an in-memory copy of every collection and writes each change
// to the store before reflecting it in memory. A failed write leaves the
// in-memory state exactly as it was.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
	"github.com/Veraticus/cashflow/internal/service"
	"github.com/Veraticus/cashflow/internal/storage"
)

// Ledger errors.
var (
	// ErrPersist wraps every store write failure. The change was not applied.
	ErrPersist            = errors.New("failed to persist change")
	ErrBuiltinExpenseType = errors.New("built-in expense types cannot be deleted")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNilStore           = errors.New("store cannot be nil")
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces the wall clock used for createdAt and for "today".
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator replaces the random UUID generator used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// Ledger coordinates mutations of transactions, categories and expense types.
// It is safe for concurrent use; mutations are serialized.
type Ledger struct {
	store        service.Store
	now          func() time.Time
	newID        func() string
	transactions []model.Transaction
	categories   []model.Category
	expenseTypes []model.ExpenseType
	mu           sync.RWMutex
}

// Open creates a Ledger over store and loads every collection.
func Open(ctx context.Context, store service.Store, opts ...Option) (*Ledger, error) {
	if ctx == nil {
		return nil, storage.ErrNilContext
	}
	if store == nil {
		return nil, ErrNilStore
	}

	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.Reload(ctx)
	return l, nil
}

// Reload replaces the in-memory state with the store's current contents.
func (l *Ledger) Reload(ctx context.Context) {
	transactions := l.store.Transactions(ctx)
	categories := l.store.Categories(ctx)
	expenseTypes := l.store.ExpenseTypes(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = transactions
	l.categories = categories
	l.expenseTypes = expenseTypes

	slog.Debug("loaded ledger",
		"transactions", len(transactions),
		"categories", len(categories),
		"expense_types", len(expenseTypes))
}

// Today returns the current calendar day according to the ledger's clock.
func (l *Ledger) Today() model.Date {
	return model.DateOf(l.now())
}

// Transactions returns a copy of every transaction.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneTransactions(l.transactions)
}

// Transaction returns the transaction with the given id.
func (l *Ledger) Transaction(id string) (model.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOfTransaction(id); i >= 0 {
		return l.transactions[i].Clone(), true
	}
	return model.Transaction{}, false
}

// Categories returns a copy of every category.
func (l *Ledger) Categories() []model.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Category(nil), l.categories...)
}

// ExpenseTypes returns a copy of every expense type.
func (l *Ledger) ExpenseTypes() []model.ExpenseType {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.ExpenseType(nil), l.expenseTypes...)
}

// Snapshot returns a consistent copy of all collections.
func (l *Ledger) Snapshot() model.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return model.Snapshot{
		Transactions: cloneTransactions(l.transactions),
		Categories:   append([]model.Category(nil), l.categories...),
		ExpenseTypes: append([]model.ExpenseType(nil), l.expenseTypes...),
	}
}

// Deadlines projects the current transactions into deadlines.
func (l *Ledger) Deadlines(today model.Date) []model.Deadline {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.Deadlines(l.transactions, today)
}

// Summary aggregates every transaction and deadline.
func (l *Ledger) Summary(today model.Date) model.FinancialSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return report.Summarize(l.transactions, report.Deadlines(l.transactions, today), today)
}

// Dashboard derives the dashboard for a period selection.
func (l *Ledger) Dashboard(period model.Period, today model.Date) report.Dashboard {
	return report.BuildDashboard(l.Snapshot(), period, today)
}

// AddTransaction records a new transaction with a fresh id and creation time.
// Structurally invalid input is rejected before anything is written.
func (l *Ledger) AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	added, err := l.ImportTransactions(ctx, []model.TransactionInput{in})
	if err != nil {
		return model.Transaction{}, err
	}
	return added[0], nil
}

// ImportTransactions records several transactions in a single store write.
// Either all of them are added or none is.
func (l *Ledger) ImportTransactions(ctx context.Context, inputs []model.TransactionInput) ([]model.Transaction, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	createdAt := l.now()
	added := make([]model.Transaction, 0, len(inputs))
	for i, in := range inputs {
		t := in.Build(l.newID(), createdAt)
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction at index %d: %w", i, err)
		}
		added = append(added, t)
	}

	if err := l.store.AddTransactions(ctx, added); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	l.transactions = append(l.transactions, added...)
	slog.Info("added transactions", "count", len(added))
	return cloneTransactions(added), nil
}

// UpdateTransaction merges patch into the transaction with the given id.
// An unknown id is a logged no-op. Clearing the due date removes the
// transaction's deadline.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOfTransaction(id)
	if i < 0 {
		slog.Warn("update of unknown transaction ignored", "id", id)
		return nil
	}
	if patch.IsEmpty() {
		return nil
	}

	updated := patch.Apply(l.transactions[i])
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid transaction %s: %w", id, err)
	}

	if err := l.store.UpdateTransaction(ctx, id, patch); err != nil {
		return l.persistError(err, "transaction", id, func() { l.transactions = remove(l.transactions, i) })
	}

	l.transactions[i] = updated
	slog.Info("updated transaction", "id", id)
	return nil
}

// DeleteTransaction removes the transaction with the given id, and with it
// any deadline derived from it. An unknown id is a logged no-op.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOfTransaction(id)
	if i < 0 {
		slog.Warn("delete of unknown transaction ignored", "id", id)
		return nil
	}

	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		return l.persistError(err, "transaction", id, func() { l.transactions = remove(l.transactions, i) })
	}

	l.transactions = remove(l.transactions, i)
	slog.Info("deleted transaction", "id", id)
	return nil
}

// AddCategory creates a category with a fresh id.
func (l *Ledger) AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, fmt.Errorf("category: %w", ErrEmptyName)
	}
	if !in.Type.Valid() {
		return model.Category{}, fmt.Errorf("category %q: %w", name, model.ErrInvalidType)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	category := model.Category{ID: l.newID(), Name: name, Type: in.Type, Color: in.Color}
	if err := l.store.AddCategory(ctx, category); err != nil {
		return model.Category{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	l.categories = append(l.categories, category)
	slog.Info("added category", "id", category.ID, "name", category.Name)
	return category, nil
}

// UpdateCategory merges patch into the category with the given id.
// An unknown id is a logged no-op.
func (l *Ledger) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("category %s: %w", id, ErrEmptyName)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return fmt.Errorf("category %s: %w", id, model.ErrInvalidType)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOfCategory(id)
	if i < 0 {
		slog.Warn("update of unknown category ignored", "id", id)
		return nil
	}

	if err := l.store.UpdateCategory(ctx, id, patch); err != nil {
		return l.persistError(err, "category", id, func() { l.categories = remove(l.categories, i) })
	}

	l.categories[i] = patch.Apply(l.categories[i])
	slog.Info("updated category", "id", id)
	return nil
}

// DeleteCategory removes the category with the given id. Transactions that
// reference it keep the stale id and are reported under the fallback label.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOfCategory(id)
	if i < 0 {
		slog.Warn("delete of unknown category ignored", "id", id)
		return nil
	}

	if err := l.store.DeleteCategory(ctx, id); err != nil {
		return l.persistError(err, "category", id, func() { l.categories = remove(l.categories, i) })
	}

	l.categories = remove(l.categories, i)
	slog.Info("deleted category", "id", id)
	return nil
}

// AddExpenseType creates a custom expense type with a fresh id.
func (l *Ledger) AddExpenseType(ctx context.Context, in model.ExpenseTypeInput) (model.ExpenseType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.ExpenseType{}, fmt.Errorf("expense type: %w", ErrEmptyName)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	expenseType := model.ExpenseType{
		ID:          l.newID(),
		Name:        name,
		Description: in.Description,
		Color:       in.Color,
	}
	if err := l.store.AddExpenseType(ctx, expenseType); err != nil {
		return model.ExpenseType{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	l.expenseTypes = append(l.expenseTypes, expenseType)
	slog.Info("added expense type", "id", expenseType.ID, "name", expenseType.Name)
	return expenseType, nil
}

// UpdateExpenseType merges patch into the expense type with the given id.
// An unknown id is a logged no-op.
func (l *Ledger) UpdateExpenseType(ctx context.Context, id string, patch model.ExpenseTypePatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("expense type %s: %w", id, ErrEmptyName)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOfExpenseType(id)
	if i < 0 {
		slog.Warn("update of unknown expense type ignored", "id", id)
		return nil
	}

	if err := l.store.UpdateExpenseType(ctx, id, patch); err != nil {
		return l.persistError(err, "expense type", id, func() { l.expenseTypes = remove(l.expenseTypes, i) })
	}

	l.expenseTypes[i] = patch.Apply(l.expenseTypes[i])
	slog.Info("updated expense type", "id", id)
	return nil
}

// DeleteExpenseType removes a custom expense type. Built-in types are
// restored on every read, so deleting one is rejected.
func (l *Ledger) DeleteExpenseType(ctx context.Context, id string) error {
	if storage.IsBuiltinExpenseType(id) {
		return fmt.Errorf("%w: %s", ErrBuiltinExpenseType, id)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOfExpenseType(id)
	if i < 0 {
		slog.Warn("delete of unknown expense type ignored", "id", id)
		return nil
	}

	if err := l.store.DeleteExpenseType(ctx, id); err != nil {
		return l.persistError(err, "expense type", id, func() { l.expenseTypes = remove(l.expenseTypes, i) })
	}

	l.expenseTypes = remove(l.expenseTypes, i)
	slog.Info("deleted expense type", "id", id)
	return nil
}

// persistError maps a store failure. A record that vanished from the store
// behind the ledger's back is treated like an unknown id and dropped from
// memory with forget, so memory keeps mirroring the store.
func (l *Ledger) persistError(err error, kind, id string, forget func()) error {
	if errors.Is(err, common.ErrNotFound) {
		slog.Warn("record missing from store, dropped from memory", "kind", kind, "id", id)
		forget()
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrPersist, kind, id, err)
}

// remove returns list without element i. It never writes into list's
// backing array, so snapshots handed out earlier stay intact.
func remove[T any](list []T, i int) []T {
	return append(list[:i:i], list[i+1:]...)
}

func (l *Ledger) indexOfTransaction(id string) int {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) indexOfCategory(id string) int {
	for i := range l.categories {
		if l.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) indexOfExpenseType(id string) int {
	for i := range l.expenseTypes {
		if l.expenseTypes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTransactions(transactions []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(transactions))
	for i, t := range transactions {
		out[i] = t.Clone()
	}
	return out
}
