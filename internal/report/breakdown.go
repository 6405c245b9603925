package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

// CategoryLabel resolves a category id to its name. Unknown ids, including
// ids of deleted categories, resolve to model.UnknownCategoryLabel.
func CategoryLabel(id string, categories []model.Category) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return model.UnknownCategoryLabel
}

// ExpenseTypeLabel resolves an expense type id to its name. An empty id means
// the normal type; anything unresolvable becomes model.UnknownExpenseTypeLabel.
func ExpenseTypeLabel(id string, expenseTypes []model.ExpenseType) string {
	if id == "" {
		id = model.ExpenseTypeNormal
	}
	for _, et := range expenseTypes {
		if et.ID == id {
			return et.Name
		}
	}
	return model.UnknownExpenseTypeLabel
}

// CategoryBreakdown groups expenses by category name, largest first.
func CategoryBreakdown(transactions []model.Transaction, categories []model.Category) []model.CategoryAmount {
	return groupExpenses(transactions, func(t model.Transaction) string {
		return CategoryLabel(t.Category, categories)
	})
}

// ExpenseTypeBreakdown groups expenses by expense type name, largest first.
func ExpenseTypeBreakdown(transactions []model.Transaction, expenseTypes []model.ExpenseType) []model.CategoryAmount {
	return groupExpenses(transactions, func(t model.Transaction) string {
		return ExpenseTypeLabel(t.ExpenseType, expenseTypes)
	})
}

func groupExpenses(transactions []model.Transaction, label func(model.Transaction) string) []model.CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		name := label(t)
		sums[name] = sums[name].Add(t.Amount)
	}

	result := make([]model.CategoryAmount, 0, len(sums))
	for name, amount := range sums {
		result = append(result, model.CategoryAmount{Name: name, Amount: amount})
	}
	sortAmounts(result)
	return result
}

// sortAmounts orders by amount descending, then by name for a stable output.
func sortAmounts(amounts []model.CategoryAmount) {
	sort.Slice(amounts, func(i, j int) bool {
		if c := amounts[i].Amount.Cmp(amounts[j].Amount); c != 0 {
			return c > 0
		}
		return amounts[i].Name < amounts[j].Name
	})
}

// CategoryTotals sums every category of either type, in category order.
// Categories with no amount are left out.
func CategoryTotals(transactions []model.Transaction, categories []model.Category) []model.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	var result []model.CategoryTotal
	for _, c := range categories {
		amount := sums[c.ID]
		if !amount.IsPositive() {
			continue
		}
		result = append(result, model.CategoryTotal{
			CategoryID: c.ID,
			Name:       c.Name,
			Color:      c.Color,
			Type:       c.Type,
			Amount:     amount,
		})
	}
	return result
}
