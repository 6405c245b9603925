package report

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

// Summarize totals every transaction and counts open deadlines.
// Both counts use strict inequalities, so a deadline due today is neither
// pending nor overdue in the summary.
func Summarize(transactions []model.Transaction, deadlines []model.Deadline, today model.Date) model.FinancialSummary {
	income, expenses := totals(transactions)

	summary := model.FinancialSummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}

	for _, d := range deadlines {
		if d.Status == model.DeadlineStatusPaid {
			continue
		}
		switch {
		case d.DueDate.After(today):
			summary.PendingDeadlines++
		case d.DueDate.Before(today):
			summary.OverdueDeadlines++
		}
	}

	return summary
}

// Stats aggregates an already filtered set of transactions.
func Stats(transactions []model.Transaction) model.PeriodStats {
	income, expenses := totals(transactions)
	return model.PeriodStats{
		Income:           income,
		Expenses:         expenses,
		Balance:          income.Sub(expenses),
		TransactionCount: len(transactions),
	}
}

func totals(transactions []model.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case model.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case model.TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}
