package pattern

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/storage"
)

func expense(description, amount string) model.TransactionInput {
	return model.TransactionInput{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Type:        model.TransactionTypeExpense,
		Category:    "12",
		ExpenseType: model.ExpenseTypeNormal,
	}
}

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		rules    []Rule
		in       model.TransactionInput
		wantName string
		wantOK   bool
	}{
		{
			name:     "substring match ignores case",
			rules:    []Rule{{Name: "mercado", Pattern: "Mercado", Category: "5"}},
			in:       expense("SUPERMERCADO DIA", "120.00"),
			wantName: "mercado",
			wantOK:   true,
		},
		{
			name:     "accents are ignored",
			rules:    []Rule{{Name: "farmacia", Pattern: "farmacia", Category: "8"}},
			in:       expense("Farmácia São João", "35.00"),
			wantName: "farmacia",
			wantOK:   true,
		},
		{
			name:     "regex match",
			rules:    []Rule{{Name: "apps", Pattern: `\b(uber|99 ?app)\b`, Regex: true, Category: "6"}},
			in:       expense("UBER *TRIP", "23.10"),
			wantName: "apps",
			wantOK:   true,
		},
		{
			name:  "type must agree",
			rules: []Rule{{Name: "salary", Pattern: "salario", Type: model.TransactionTypeIncome, Category: "1"}},
			in:    expense("SALARIO ADIANTADO", "100.00"),
		},
		{
			name:  "no match",
			rules: []Rule{{Name: "mercado", Pattern: "mercado", Category: "5"}},
			in:    expense("POSTO SHELL", "200.00"),
		},
		{
			name: "higher priority wins",
			rules: []Rule{
				{Name: "general", Pattern: "pix", Category: "12", Priority: 1},
				{Name: "rent", Pattern: "pix aluguel", Category: "7", Priority: 10},
			},
			in:       expense("PIX ALUGUEL JUNHO", "1500.00"),
			wantName: "rent",
			wantOK:   true,
		},
		{
			name: "ties keep their order",
			rules: []Rule{
				{Name: "first", Pattern: "pix", Category: "12"},
				{Name: "second", Pattern: "pix", Category: "10"},
			},
			in:       expense("PIX ENVIADO", "10.00"),
			wantName: "first",
			wantOK:   true,
		},
		{
			name:     "amount above threshold",
			rules:    []Rule{{Name: "big", Pattern: "posto", Category: "6", AmountCondition: AmountMore, AmountValue: "100"}},
			in:       expense("POSTO IPIRANGA", "150.00"),
			wantName: "big",
			wantOK:   true,
		},
		{
			name:  "amount below threshold",
			rules: []Rule{{Name: "big", Pattern: "posto", Category: "6", AmountCondition: AmountMore, AmountValue: "100"}},
			in:    expense("POSTO IPIRANGA", "50.00"),
		},
		{
			name:     "amount within range",
			rules:    []Rule{{Name: "range", Pattern: "posto", Category: "6", AmountCondition: AmountRange, AmountMin: "10", AmountMax: "60"}},
			in:       expense("POSTO IPIRANGA", "60.00"),
			wantName: "range",
			wantOK:   true,
		},
		{
			name:  "amount outside range",
			rules: []Rule{{Name: "range", Pattern: "posto", Category: "6", AmountCondition: AmountRange, AmountMin: "10", AmountMax: "60"}},
			in:    expense("POSTO IPIRANGA", "9.99"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.rules)
			require.NoError(t, err)

			rule, ok := m.Match(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, rule.Name)
		})
	}
}

func TestNewMatcher_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"empty pattern", Rule{Name: "empty", Category: "5"}},
		{"bad regex", Rule{Pattern: "(unclosed", Regex: true, Category: "5"}},
		{"bad amount", Rule{Pattern: "x", Category: "5", AmountCondition: AmountLess, AmountValue: "abc"}},
		{"missing amount", Rule{Pattern: "x", Category: "5", AmountCondition: AmountAtLeast}},
		{"unknown condition", Rule{Pattern: "x", Category: "5", AmountCondition: "between"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher([]Rule{tt.rule})
			require.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestMatcher_Categorize(t *testing.T) {
	m, err := NewMatcher(DefaultRules())
	require.NoError(t, err)

	inputs := []model.TransactionInput{
		expense("IFOOD *RESTAURANTE", "45.90"),
		expense("APLICACAO CDB", "1000.00"),
		expense("TRANSFERENCIA", "50.00"),
		{Description: "PAGTO SALARIO", Amount: decimal.RequireFromString("5000"), Type: model.TransactionTypeIncome, Category: "4"},
	}

	changed := m.Categorize(inputs)
	assert.Equal(t, 3, changed)
	assert.Equal(t, "5", inputs[0].Category)
	assert.Equal(t, model.ExpenseTypeNormal, inputs[0].ExpenseType)
	assert.Equal(t, "12", inputs[1].Category)
	assert.Equal(t, model.ExpenseTypeReserve, inputs[1].ExpenseType)
	assert.Equal(t, "12", inputs[2].Category)
	assert.Equal(t, "1", inputs[3].Category)
	assert.Empty(t, inputs[3].ExpenseType)
}

func TestValidateRules(t *testing.T) {
	categories := storage.DefaultCategories()

	require.NoError(t, ValidateRules(DefaultRules(), categories))

	err := ValidateRules([]Rule{{Name: "ghost", Pattern: "x", Category: "99"}}, categories)
	require.ErrorIs(t, err, ErrInvalidRule)
	assert.Contains(t, err.Error(), "unknown category")

	err = ValidateRules([]Rule{{Name: "wrong", Pattern: "x", Category: "1", Type: model.TransactionTypeExpense}}, categories)
	require.ErrorIs(t, err, ErrInvalidRule)
	assert.Contains(t, err.Error(), "is for expense")
}
