package storage

import "github.com/Veraticus/cashflow/internal/model"

// DefaultCategories returns the categories seeded on first run.
func DefaultCategories() []model.Category {
	income, expense := model.TransactionTypeIncome, model.TransactionTypeExpense
	return []model.Category{
		{ID: "1", Name: "Salário", Type: income, Color: "#22c55e"},
		{ID: "2", Name: "Freelance", Type: income, Color: "#3b82f6"},
		{ID: "3", Name: "Investimentos", Type: income, Color: "#8b5cf6"},
		{ID: "4", Name: "Outros", Type: income, Color: "#06b6d4"},
		{ID: "5", Name: "Alimentação", Type: expense, Color: "#ef4444"},
		{ID: "6", Name: "Transporte", Type: expense, Color: "#f59e0b"},
		{ID: "7", Name: "Moradia", Type: expense, Color: "#ec4899"},
		{ID: "8", Name: "Saúde", Type: expense, Color: "#10b981"},
		{ID: "9", Name: "Educação", Type: expense, Color: "#6366f1"},
		{ID: "10", Name: "Lazer", Type: expense, Color: "#f97316"},
		{ID: "11", Name: "Contas", Type: expense, Color: "#84cc16"},
		{ID: "12", Name: "Outros", Type: expense, Color: "#6b7280"},
	}
}

// DefaultExpenseTypes returns the built-in expense types. They are seeded on
// first run and restored whenever stored data is missing one of them.
func DefaultExpenseTypes() []model.ExpenseType {
	return []model.ExpenseType{
		{ID: model.ExpenseTypeNormal, Name: "Normal", Description: "Despesa comum do dia a dia", Color: "#6b7280", IsDefault: true},
		{ID: model.ExpenseTypeReserve, Name: "Reserva", Description: "Valor separado como reserva", Color: "#3b82f6", IsDefault: true},
		{ID: model.ExpenseTypeRefund, Name: "Devolução", Description: "Devolução de valores", Color: "#22c55e", IsDefault: true},
	}
}

// IsBuiltinExpenseType reports whether id names one of the default expense types.
func IsBuiltinExpenseType(id string) bool {
	for _, et := range DefaultExpenseTypes() {
		if et.ID == id {
			return true
		}
	}
	return false
}

// mergeDefaultExpenseTypes appends any missing built-in type to stored and
// reports whether anything was added. Existing entries are left untouched.
func mergeDefaultExpenseTypes(stored []model.ExpenseType) ([]model.ExpenseType, bool) {
	present := make(map[string]struct{}, len(stored))
	for _, et := range stored {
		present[et.ID] = struct{}{}
	}

	merged := append([]model.ExpenseType(nil), stored...)
	added := false
	for _, def := range DefaultExpenseTypes() {
		if _, ok := present[def.ID]; ok {
			continue
		}
		merged = append(merged, def)
		added = true
	}
	return merged, added
}
