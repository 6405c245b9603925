package report

import (
	"sort"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
)

// AvailableYears returns every year with at least one transaction, newest first.
func AvailableYears(transactions []model.Transaction) []int {
	seen := make(map[int]struct{})
	for _, t := range transactions {
		seen[t.Date.Year()] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// AvailableMonths returns the months that have transactions in the given year,
// in calendar order. A year without transactions yields all twelve months so a
// month selector is never empty. Year zero means every year.
func AvailableMonths(transactions []model.Transaction, year int) []time.Month {
	var present [13]bool
	found := false
	for _, t := range transactions {
		if year != 0 && t.Date.Year() != year {
			continue
		}
		present[t.Date.Month()] = true
		found = true
	}

	months := make([]time.Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if !found || present[m] {
			months = append(months, m)
		}
	}
	return months
}

// FilterByPeriod keeps the transactions dated inside the selection. Year and
// month are applied independently and combined with AND.
func FilterByPeriod(transactions []model.Transaction, period model.Period) []model.Transaction {
	if period.IsAll() {
		return append([]model.Transaction(nil), transactions...)
	}
	var result []model.Transaction
	for _, t := range transactions {
		if period.Contains(t.Date) {
			result = append(result, t)
		}
	}
	return result
}

// FilterByType keeps the transactions of one type. An empty type keeps all.
func FilterByType(transactions []model.Transaction, typ model.TransactionType) []model.Transaction {
	var result []model.Transaction
	for _, t := range transactions {
		if typ == "" || t.Type == typ {
			result = append(result, t)
		}
	}
	return result
}
