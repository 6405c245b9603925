package ledger

import (
	"context"
	"log/slog"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
)

// Deadlines have no storage of their own. Every deadline operation resolves
// the deadline to its transaction and edits that transaction.

// UpdateDeadline edits the transaction behind the deadline with the given id.
// An id that is not a current deadline is a logged no-op.
func (l *Ledger) UpdateDeadline(ctx context.Context, id string, patch model.DeadlinePatch) error {
	transactionID, ok := l.resolveDeadline(id)
	if !ok {
		slog.Warn("update of unknown deadline ignored", "id", id)
		return nil
	}
	return l.UpdateTransaction(ctx, transactionID, patch.TransactionPatch())
}

// DeleteDeadline clears the due date of the transaction behind the deadline.
// The transaction itself is kept.
func (l *Ledger) DeleteDeadline(ctx context.Context, id string) error {
	transactionID, ok := l.resolveDeadline(id)
	if !ok {
		slog.Warn("delete of unknown deadline ignored", "id", id)
		return nil
	}
	return l.UpdateTransaction(ctx, transactionID, model.TransactionPatch{ClearDueDate: true})
}

// AddDeadline always fails: a deadline exists only as the due date of a
// transaction, so new deadlines are created with AddTransaction.
func (l *Ledger) AddDeadline(_ context.Context, _ model.DeadlinePatch) error {
	return common.NewUserError("deadlines cannot be created on their own; add a transaction with a due date instead", common.ErrUnsupportedOperation)
}

func (l *Ledger) resolveDeadline(id string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// Status does not matter for resolution, so any day will do.
	d, ok := report.FindDeadline(report.Deadlines(l.transactions, model.Date{}), id)
	if !ok {
		return "", false
	}
	return d.TransactionID, true
}
