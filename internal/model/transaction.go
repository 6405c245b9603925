// Package model defines the domain types shared by every layer of the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	// TransactionTypeIncome represents money received.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense represents money spent.
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Structural validation errors.
var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrMissingID     = errors.New("missing id")
	ErrMissingDate   = errors.New("missing date")
	ErrNegativeValue = errors.New("amount cannot be negative")
)

// Transaction is a single recorded income or expense. It is the only
// financial record that is persisted; deadlines are derived from it.
type Transaction struct {
	CreatedAt   time.Time       `json:"createdAt"`
	Date        Date            `json:"date"`
	DueDate     *Date           `json:"dueDate,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	ExpenseType string          `json:"expenseType,omitempty"` // only meaningful for expenses
}

// HasDueDate reports whether the transaction surfaces as a deadline.
func (t Transaction) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// Clone returns a copy that shares no pointers with t.
func (t Transaction) Clone() Transaction {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// Validate checks the structural shape of a stored transaction.
// Business rules such as required descriptions belong to the input layer.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if t.Amount.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

// TransactionInput holds the caller-supplied fields of a new transaction.
type TransactionInput struct {
	Date        Date
	DueDate     *Date
	Amount      decimal.Decimal
	Description string
	Type        TransactionType
	Category    string
	ExpenseType string
}

// Build creates a transaction from the input with the given identity.
func (in TransactionInput) Build(id string, createdAt time.Time) Transaction {
	t := Transaction{
		ID:          id,
		CreatedAt:   createdAt,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		ExpenseType: in.ExpenseType,
		Date:        in.Date,
	}
	if in.DueDate != nil && !in.DueDate.IsZero() {
		t.DueDate = in.DueDate.Ptr()
	}
	return t
}

// TransactionPatch is a partial update. Nil fields are left unchanged.
// ClearDueDate removes the due date and with it the derived deadline.
type TransactionPatch struct {
	Date         *Date
	DueDate      *Date
	Amount       *decimal.Decimal
	Description  *string
	Type         *TransactionType
	Category     *string
	ExpenseType  *string
	ClearDueDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Date == nil && p.DueDate == nil && p.Amount == nil && p.Description == nil &&
		p.Type == nil && p.Category == nil && p.ExpenseType == nil && !p.ClearDueDate
}

// Apply merges the patch into t and returns the result. ID and CreatedAt never change.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	t = t.Clone()
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ExpenseType != nil {
		t.ExpenseType = *p.ExpenseType
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil && !p.DueDate.IsZero():
		t.DueDate = p.DueDate.Ptr()
	case p.DueDate != nil:
		t.DueDate = nil
	}
	return t
}
