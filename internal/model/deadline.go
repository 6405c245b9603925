package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeadlineStatus describes where a deadline stands relative to today.
type DeadlineStatus string

const (
	// DeadlineStatusPending is a deadline due today or later.
	DeadlineStatusPending DeadlineStatus = "pending"
	// DeadlineStatusOverdue is a deadline whose due date has passed.
	DeadlineStatusOverdue DeadlineStatus = "overdue"
	// DeadlineStatusPaid is kept for records written by older versions.
	// Transactions carry no paid flag, so the projection never produces it.
	DeadlineStatusPaid DeadlineStatus = "paid"
)

// Deadline is a read-only view of a transaction that has a due date.
// ID and TransactionID are both the owning transaction's id.
type Deadline struct {
	CreatedAt     time.Time
	DueDate       Date
	Amount        decimal.Decimal
	ID            string
	TransactionID string
	Title         string
	Category      string
	ExpenseType   string
	Type          TransactionType
	Status        DeadlineStatus
}

// DaysUntil returns how many days remain until the deadline; negative when overdue.
func (d Deadline) DaysUntil(today Date) int {
	return today.DaysUntil(d.DueDate)
}

// DeadlinePatch edits a deadline, which means editing its owning transaction.
// A due date cannot be cleared here; delete the deadline instead.
type DeadlinePatch struct {
	DueDate  *Date
	Amount   *decimal.Decimal
	Title    *string
	Category *string
}

// TransactionPatch translates the deadline edit into a transaction edit.
func (p DeadlinePatch) TransactionPatch() TransactionPatch {
	patch := TransactionPatch{
		Description: p.Title,
		Amount:      p.Amount,
		Category:    p.Category,
	}
	if p.DueDate != nil && !p.DueDate.IsZero() {
		patch.DueDate = p.DueDate
	}
	return patch
}

// DeadlineStats counts deadlines the way the deadlines view presents them.
// Pending here includes deadlines due today, unlike FinancialSummary.
type DeadlineStats struct {
	Total    int
	Pending  int
	Overdue  int
	DueToday int
	DueSoon  int // due within the next seven days, excluding today
}
