package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

// TransactionBuilder builds transaction inputs fluently. The zero builder is
// not useful; start from Income or Expense.
//
// Example:
//
//	in := testutil.Expense("300").On(2024, time.January, 15).Due(2024, time.January, 20).Input()
type TransactionBuilder struct {
	in model.TransactionInput
}

// Income starts an income of amount in the default salary category.
func Income(amount string) TransactionBuilder {
	return TransactionBuilder{in: model.TransactionInput{
		Description: "Salário",
		Amount:      decimal.RequireFromString(amount),
		Type:        model.TransactionTypeIncome,
		Category:    "1",
		Date:        Today,
	}}
}

// Expense starts an expense of amount in the default food category.
func Expense(amount string) TransactionBuilder {
	return TransactionBuilder{in: model.TransactionInput{
		Description: "Mercado",
		Amount:      decimal.RequireFromString(amount),
		Type:        model.TransactionTypeExpense,
		Category:    "5",
		ExpenseType: model.ExpenseTypeNormal,
		Date:        Today,
	}}
}

// On sets the transaction date.
func (b TransactionBuilder) On(year int, month time.Month, day int) TransactionBuilder {
	b.in.Date = model.NewDate(year, month, day)
	return b
}

// Due sets the due date.
func (b TransactionBuilder) Due(year int, month time.Month, day int) TransactionBuilder {
	b.in.DueDate = model.NewDate(year, month, day).Ptr()
	return b
}

// Described sets the description.
func (b TransactionBuilder) Described(description string) TransactionBuilder {
	b.in.Description = description
	return b
}

// InCategory sets the category id.
func (b TransactionBuilder) InCategory(id string) TransactionBuilder {
	b.in.Category = id
	return b
}

// OfExpenseType sets the expense type id.
func (b TransactionBuilder) OfExpenseType(id string) TransactionBuilder {
	b.in.ExpenseType = id
	return b
}

// Input returns the built input.
func (b TransactionBuilder) Input() model.TransactionInput {
	in := b.in
	if in.DueDate != nil {
		in.DueDate = in.DueDate.Ptr()
	}
	return in
}
