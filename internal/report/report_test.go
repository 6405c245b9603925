package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/model"
)

var today = model.NewDate(2024, time.June, 15)

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func income(id, value string, on model.Date) model.Transaction {
	return model.Transaction{ID: id, Description: id, Amount: amount(value), Type: model.TransactionTypeIncome, Category: "1", Date: on}
}

func expense(id, value, category string, on model.Date) model.Transaction {
	return model.Transaction{ID: id, Description: id, Amount: amount(value), Type: model.TransactionTypeExpense, Category: category, Date: on}
}

func withDue(t model.Transaction, due model.Date) model.Transaction {
	t.DueDate = due.Ptr()
	return t
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		income("salary-jan", "5000", date(2024, time.January, 5)),
		expense("rent-jan", "1500", "7", date(2024, time.January, 10)),
		withDue(expense("power-jun", "180.40", "11", date(2024, time.June, 1)), date(2024, time.June, 14)),
		withDue(expense("school-jun", "900", "9", date(2024, time.June, 2)), date(2024, time.June, 16)),
		withDue(expense("water-jun", "75.10", "11", date(2024, time.June, 3)), date(2024, time.June, 15)),
		income("freelance-2023", "1200", date(2023, time.June, 20)),
		expense("food-2023", "320.55", "5", date(2023, time.December, 24)),
	}
}

func TestDeadlinesProjectOnlyTransactionsWithDueDates(t *testing.T) {
	txns := sampleTransactions()

	deadlines := Deadlines(txns, today)

	require.Len(t, deadlines, 3)
	withDueDates := map[string]model.Transaction{}
	for _, txn := range txns {
		if txn.HasDueDate() {
			withDueDates[txn.ID] = txn
		}
	}
	for _, d := range deadlines {
		src, ok := withDueDates[d.ID]
		require.True(t, ok, "deadline %s has no source transaction", d.ID)
		assert.Equal(t, src.ID, d.TransactionID)
		assert.Equal(t, src.Description, d.Title)
		assert.True(t, src.Amount.Equal(d.Amount))
		assert.True(t, src.DueDate.Equal(d.DueDate))
	}
}

func TestDeadlineStatusBoundary(t *testing.T) {
	txns := []model.Transaction{
		withDue(expense("yesterday", "10", "5", date(2024, time.June, 1)), date(2024, time.June, 14)),
		withDue(expense("tomorrow", "10", "5", date(2024, time.June, 1)), date(2024, time.June, 16)),
		withDue(expense("today", "10", "5", date(2024, time.June, 1)), date(2024, time.June, 15)),
	}

	deadlines := Deadlines(txns, today)
	status := map[string]model.DeadlineStatus{}
	for _, d := range deadlines {
		status[d.ID] = d.Status
	}

	assert.Equal(t, model.DeadlineStatusOverdue, status["yesterday"])
	assert.Equal(t, model.DeadlineStatusPending, status["tomorrow"])
	assert.Equal(t, model.DeadlineStatusPending, status["today"])

	summary := Summarize(txns, deadlines, today)
	assert.Equal(t, 1, summary.PendingDeadlines)
	assert.Equal(t, 1, summary.OverdueDeadlines, "a deadline due today is neither pending nor overdue")
}

func TestDeadlineStatusIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.Local)
	txn := withDue(expense("bill", "10", "5", date(2024, time.June, 1)), date(2024, time.June, 15))

	deadlines := Deadlines([]model.Transaction{txn}, model.DateOf(late))

	require.Len(t, deadlines, 1)
	assert.Equal(t, model.DeadlineStatusPending, deadlines[0].Status)
}

func TestSummarizeAdditivity(t *testing.T) {
	txns := sampleTransactions()

	summary := Summarize(txns, Deadlines(txns, today), today)

	assert.True(t, summary.TotalIncome.Equal(amount("6200")), "income %s", summary.TotalIncome)
	assert.True(t, summary.TotalExpenses.Equal(amount("2976.05")), "expenses %s", summary.TotalExpenses)
	assert.True(t, summary.TotalIncome.Sub(summary.TotalExpenses).Equal(summary.Balance))
}

func TestSummarizeSkipsLegacyPaidDeadlines(t *testing.T) {
	deadlines := []model.Deadline{
		{ID: "a", DueDate: date(2024, time.June, 20), Status: model.DeadlineStatusPaid},
		{ID: "b", DueDate: date(2024, time.June, 1), Status: model.DeadlineStatusPaid},
	}

	summary := Summarize(nil, deadlines, today)

	assert.Zero(t, summary.PendingDeadlines)
	assert.Zero(t, summary.OverdueDeadlines)
}

func TestEmptyStart(t *testing.T) {
	summary := Summarize(nil, nil, today)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.Balance.IsZero())
	assert.Zero(t, summary.PendingDeadlines)
	assert.Zero(t, summary.OverdueDeadlines)

	assert.Empty(t, AvailableYears(nil))

	evolution := MonthlyEvolution(nil)
	require.Len(t, evolution, 12)
	for i, p := range evolution {
		assert.Equal(t, time.Month(i+1), p.Month)
		assert.True(t, p.Income.IsZero())
		assert.True(t, p.Expenses.IsZero())
		assert.True(t, p.Balance.IsZero())
	}
}

func TestAvailableYearsDescending(t *testing.T) {
	assert.Equal(t, []int{2024, 2023}, AvailableYears(sampleTransactions()))
}

func TestAvailableMonths(t *testing.T) {
	txns := sampleTransactions()

	assert.Equal(t, []time.Month{time.January, time.June}, AvailableMonths(txns, 2024))
	assert.Equal(t, []time.Month{time.June, time.December}, AvailableMonths(txns, 2023))

	t.Run("year without data falls back to every month", func(t *testing.T) {
		months := AvailableMonths(txns, 2019)
		require.Len(t, months, 12)
		assert.Equal(t, time.January, months[0])
		assert.Equal(t, time.December, months[11])
	})

	t.Run("no year selected uses every year", func(t *testing.T) {
		assert.Equal(t, []time.Month{time.January, time.June, time.December}, AvailableMonths(txns, 0))
	})
}

func TestFilterByPeriod(t *testing.T) {
	txns := sampleTransactions()

	assert.Len(t, FilterByPeriod(txns, model.AllTime()), len(txns))
	assert.Len(t, FilterByPeriod(txns, model.Period{Year: 2024}), 5)
	assert.Len(t, FilterByPeriod(txns, model.Period{Year: 2024, Month: time.June}), 3)
	assert.Len(t, FilterByPeriod(txns, model.Period{Month: time.June}), 4, "month applies across years without a year")
	assert.Empty(t, FilterByPeriod(txns, model.Period{Year: 2022}))
}

func TestFilterByPeriodComposes(t *testing.T) {
	txns := sampleTransactions()
	for _, year := range []int{2023, 2024, 2025} {
		for m := time.January; m <= time.December; m++ {
			t.Run(fmt.Sprintf("%d-%02d", year, m), func(t *testing.T) {
				stepwise := FilterByPeriod(FilterByPeriod(txns, model.Period{Year: year}), model.Period{Month: m})
				direct := FilterByPeriod(txns, model.Period{Year: year, Month: m})
				assert.Equal(t, direct, stepwise)
			})
		}
	}
}

func TestBasicFlowStats(t *testing.T) {
	txns := []model.Transaction{
		income("a", "1000", date(2024, time.January, 10)),
		withDue(expense("b", "300", "5", date(2024, time.January, 15)), date(2024, time.January, 20)),
	}

	stats := Stats(FilterByPeriod(txns, model.Period{Year: 2024}))

	assert.True(t, stats.Income.Equal(amount("1000")))
	assert.True(t, stats.Expenses.Equal(amount("300")))
	assert.True(t, stats.Balance.Equal(amount("700")))
	assert.Equal(t, 2, stats.TransactionCount)

	deadlines := Deadlines(txns, today)
	require.Len(t, deadlines, 1)
	assert.True(t, deadlines[0].Amount.Equal(amount("300")))
	assert.Equal(t, model.DeadlineStatusOverdue, deadlines[0].Status)
	assert.Equal(t, model.DeadlineStatusPending, Deadlines(txns, date(2024, time.January, 19))[0].Status)
}

func TestCategoryBreakdown(t *testing.T) {
	categories := []model.Category{
		{ID: "5", Name: "Alimentação", Type: model.TransactionTypeExpense},
		{ID: "11", Name: "Contas", Type: model.TransactionTypeExpense},
	}
	txns := []model.Transaction{
		expense("a", "100", "5", date(2024, time.March, 1)),
		expense("b", "250", "11", date(2024, time.March, 2)),
		expense("c", "50", "5", date(2024, time.March, 3)),
		income("d", "9999", date(2024, time.March, 4)),
	}

	got := CategoryBreakdown(txns, categories)

	require.Len(t, got, 2)
	assert.Equal(t, "Contas", got[0].Name)
	assert.True(t, got[0].Amount.Equal(amount("250")))
	assert.Equal(t, "Alimentação", got[1].Name)
	assert.True(t, got[1].Amount.Equal(amount("150")))
}

func TestCategoryBreakdownAfterCategoryDeletion(t *testing.T) {
	txns := []model.Transaction{
		expense("a", "100", "deleted-id", date(2024, time.March, 1)),
		expense("b", "40", "5", date(2024, time.March, 2)),
	}
	categories := []model.Category{{ID: "5", Name: "Alimentação", Type: model.TransactionTypeExpense}}

	got := CategoryBreakdown(txns, categories)

	require.Len(t, got, 2)
	assert.Equal(t, model.UnknownCategoryLabel, got[0].Name)
	assert.True(t, got[0].Amount.Equal(amount("100")))
}

func TestExpenseTypeBreakdown(t *testing.T) {
	types := []model.ExpenseType{
		{ID: model.ExpenseTypeNormal, Name: "Normal", IsDefault: true},
		{ID: model.ExpenseTypeReserve, Name: "Reserva", IsDefault: true},
	}
	reserve := expense("b", "500", "5", date(2024, time.April, 2))
	reserve.ExpenseType = model.ExpenseTypeReserve
	unknown := expense("c", "20", "5", date(2024, time.April, 3))
	unknown.ExpenseType = "gone"
	txns := []model.Transaction{
		expense("a", "80", "5", date(2024, time.April, 1)),
		reserve,
		unknown,
		income("d", "100", date(2024, time.April, 4)),
	}

	got := ExpenseTypeBreakdown(txns, types)

	require.Len(t, got, 2)
	assert.Equal(t, "Reserva", got[0].Name)
	assert.True(t, got[0].Amount.Equal(amount("500")))
	assert.Equal(t, "Normal", got[1].Name)
	assert.True(t, got[1].Amount.Equal(amount("100")), "empty and unresolved types both fall back to Normal")
}

func TestLabelsAreTotal(t *testing.T) {
	assert.Equal(t, model.UnknownCategoryLabel, CategoryLabel("", nil))
	assert.Equal(t, model.UnknownExpenseTypeLabel, ExpenseTypeLabel("x", nil))
}

func TestMonthlyEvolutionMergesYears(t *testing.T) {
	txns := sampleTransactions()

	all := MonthlyEvolution(txns)
	june := all[time.June-1]
	assert.True(t, june.Income.Equal(amount("1200")))
	assert.True(t, june.Expenses.Equal(amount("1155.50")))
	assert.True(t, june.Balance.Equal(amount("44.50")))
	assert.Zero(t, june.Year)

	scoped := MonthlyEvolutionForYear(txns, 2024)
	assert.True(t, scoped[time.June-1].Income.IsZero())
	assert.Equal(t, 2024, scoped[time.June-1].Year)
	assert.True(t, scoped[time.December-1].Expenses.IsZero())
}

func TestMonthlyHistoryIsChronological(t *testing.T) {
	history := MonthlyHistory(sampleTransactions())

	require.Len(t, history, 4)
	assert.Equal(t, 2023, history[0].Year)
	assert.Equal(t, time.June, history[0].Month)
	assert.Equal(t, 2023, history[1].Year)
	assert.Equal(t, time.December, history[1].Month)
	assert.Equal(t, time.January, history[2].Month)
	assert.True(t, history[2].Balance.Equal(amount("3500")))
	assert.Equal(t, time.June, history[3].Month)
}

func TestCategoryTotals(t *testing.T) {
	categories := []model.Category{
		{ID: "1", Name: "Salário", Type: model.TransactionTypeIncome, Color: "#22c55e"},
		{ID: "5", Name: "Alimentação", Type: model.TransactionTypeExpense, Color: "#ef4444"},
		{ID: "6", Name: "Transporte", Type: model.TransactionTypeExpense, Color: "#f59e0b"},
	}

	got := CategoryTotals(sampleTransactions(), categories)

	require.Len(t, got, 2)
	assert.Equal(t, "Salário", got[0].Name)
	assert.True(t, got[0].Amount.Equal(amount("6200")))
	assert.Equal(t, "Alimentação", got[1].Name)
	assert.Equal(t, "#ef4444", got[1].Color)
}

func TestDeadlineStatsAndMonthView(t *testing.T) {
	deadlines := Deadlines([]model.Transaction{
		withDue(expense("late", "1", "5", date(2024, time.June, 1)), date(2024, time.June, 10)),
		withDue(expense("now", "1", "5", date(2024, time.June, 1)), date(2024, time.June, 15)),
		withDue(expense("soon", "1", "5", date(2024, time.June, 1)), date(2024, time.June, 22)),
		withDue(expense("later", "1", "5", date(2024, time.June, 1)), date(2024, time.June, 23)),
		withDue(expense("july", "1", "5", date(2024, time.June, 1)), date(2024, time.July, 2)),
	}, today)

	stats := DeadlineStats(deadlines, today)
	assert.Equal(t, model.DeadlineStats{Total: 5, Pending: 4, Overdue: 1, DueToday: 1, DueSoon: 1}, stats)

	june := DeadlinesInMonth(deadlines, 2024, time.June)
	require.Len(t, june, 4)
	assert.Equal(t, "late", june[0].ID)
	assert.Equal(t, "later", june[3].ID)

	found, ok := FindDeadline(deadlines, "soon")
	require.True(t, ok)
	assert.Equal(t, 7, found.DaysUntil(today))
}

func TestDerivationsAreRepeatable(t *testing.T) {
	snap := model.Snapshot{Transactions: sampleTransactions()}
	period := model.Period{Year: 2024}

	first := BuildDashboard(snap, period, today)
	second := BuildDashboard(snap, period, today)

	assert.Equal(t, first, second)
	assert.Equal(t, 5, first.Stats.TransactionCount)
	assert.Equal(t, []time.Month{time.January, time.June}, first.Months)
}
