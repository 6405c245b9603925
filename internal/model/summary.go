package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary aggregates every transaction. It is never persisted.
type FinancialSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	PendingDeadlines int
	OverdueDeadlines int
}

// PeriodStats aggregates the transactions of a selected period.
type PeriodStats struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// CategoryAmount is an amount grouped under a resolved label.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryTotal is the total of one category, kept with its type and color.
type CategoryTotal struct {
	Amount     decimal.Decimal
	CategoryID string
	Name       string
	Color      string
	Type       TransactionType
}

// MonthlyPoint is one entry of a monthly income/expense series.
// Year is zero when the point aggregates the same month across all years.
type MonthlyPoint struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
	Year     int
	Month    time.Month
}

// Snapshot is a consistent copy of every stored collection.
type Snapshot struct {
	Transactions []Transaction
	Categories   []Category
	ExpenseTypes []ExpenseType
}
