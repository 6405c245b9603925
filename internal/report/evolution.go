package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

// MonthlyEvolution returns twelve points indexed 0..11 for January..December.
// Every month is present even without data. Transactions from different years
// land in the same month bucket; use MonthlyEvolutionForYear to scope by year.
func MonthlyEvolution(transactions []model.Transaction) [12]model.MonthlyPoint {
	return MonthlyEvolutionForYear(transactions, 0)
}

// MonthlyEvolutionForYear is MonthlyEvolution restricted to one year.
// Year zero aggregates every year.
func MonthlyEvolutionForYear(transactions []model.Transaction, year int) [12]model.MonthlyPoint {
	var points [12]model.MonthlyPoint
	for i := range points {
		points[i] = model.MonthlyPoint{
			Year:     year,
			Month:    time.Month(i + 1),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Balance:  decimal.Zero,
		}
	}

	for _, t := range transactions {
		if year != 0 && t.Date.Year() != year {
			continue
		}
		accumulate(&points[t.Date.Month()-1], t)
	}
	return points
}

// MonthlyHistory returns one point per year-month that has transactions,
// oldest first.
func MonthlyHistory(transactions []model.Transaction) []model.MonthlyPoint {
	type key struct {
		year  int
		month time.Month
	}
	byMonth := make(map[key]*model.MonthlyPoint)
	for _, t := range transactions {
		k := key{year: t.Date.Year(), month: t.Date.Month()}
		p, ok := byMonth[k]
		if !ok {
			p = &model.MonthlyPoint{
				Year:     k.year,
				Month:    k.month,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
				Balance:  decimal.Zero,
			}
			byMonth[k] = p
		}
		accumulate(p, t)
	}

	history := make([]model.MonthlyPoint, 0, len(byMonth))
	for _, p := range byMonth {
		history = append(history, *p)
	}
	sort.Slice(history, func(i, j int) bool {
		if history[i].Year != history[j].Year {
			return history[i].Year < history[j].Year
		}
		return history[i].Month < history[j].Month
	})
	return history
}

func accumulate(p *model.MonthlyPoint, t model.Transaction) {
	switch t.Type {
	case model.TransactionTypeIncome:
		p.Income = p.Income.Add(t.Amount)
	case model.TransactionTypeExpense:
		p.Expenses = p.Expenses.Add(t.Amount)
	}
	p.Balance = p.Income.Sub(p.Expenses)
}
