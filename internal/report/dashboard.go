package report

import (
	"time"

	"github.com/Veraticus/cashflow/internal/model"
)

// Dashboard bundles everything a dashboard view renders for one selection.
type Dashboard struct {
	Summary         model.FinancialSummary
	Stats           model.PeriodStats
	Deadlines       []model.Deadline
	Categories      []model.CategoryAmount
	ExpenseTypes    []model.CategoryAmount
	Years           []int
	Months          []time.Month
	DeadlineStats   model.DeadlineStats
	Period          model.Period
	Evolution       [12]model.MonthlyPoint
	HasTransactions bool
}

// BuildDashboard derives the dashboard from a snapshot. The overall summary
// always covers every transaction; the remaining figures follow the selection.
// The evolution series is scoped to the selected year when there is one.
func BuildDashboard(snap model.Snapshot, period model.Period, today model.Date) Dashboard {
	deadlines := Deadlines(snap.Transactions, today)
	filtered := FilterByPeriod(snap.Transactions, period)

	return Dashboard{
		Period:          period,
		Summary:         Summarize(snap.Transactions, deadlines, today),
		Stats:           Stats(filtered),
		Deadlines:       deadlines,
		DeadlineStats:   DeadlineStats(deadlines, today),
		Categories:      CategoryBreakdown(filtered, snap.Categories),
		ExpenseTypes:    ExpenseTypeBreakdown(filtered, snap.ExpenseTypes),
		Years:           AvailableYears(snap.Transactions),
		Months:          AvailableMonths(snap.Transactions, period.Year),
		Evolution:       MonthlyEvolutionForYear(snap.Transactions, period.Year),
		HasTransactions: len(snap.Transactions) > 0,
	}
}
