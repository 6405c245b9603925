// Package storage provides the data persistence layer for cashflow.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/cashflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidExpenseType = errors.New("invalid expense type")
	ErrDuplicateID        = errors.New("duplicate id")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions checks the structural shape of every transaction and
// that ids are unique within the collection.
func validateTransactions(transactions []model.Transaction) error {
	seen := make(map[string]struct{}, len(transactions))
	for i, txn := range transactions {
		if err := txn.Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidTransaction, i, err)
		}
		if _, dup := seen[txn.ID]; dup {
			return fmt.Errorf("%w at index %d: %w %s", ErrInvalidTransaction, i, ErrDuplicateID, txn.ID)
		}
		seen[txn.ID] = struct{}{}
	}
	return nil
}

// validateCategories checks ids, names and types of every category.
func validateCategories(categories []model.Category) error {
	seen := make(map[string]struct{}, len(categories))
	for i, c := range categories {
		if c.ID == "" {
			return fmt.Errorf("%w at index %d: missing id", ErrInvalidCategory, i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w at index %d: missing name", ErrInvalidCategory, i)
		}
		if !c.Type.Valid() {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidCategory, i, model.ErrInvalidType)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w at index %d: %w %s", ErrInvalidCategory, i, ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// validateExpenseTypes checks ids and names of every expense type.
func validateExpenseTypes(expenseTypes []model.ExpenseType) error {
	seen := make(map[string]struct{}, len(expenseTypes))
	for i, et := range expenseTypes {
		if et.ID == "" {
			return fmt.Errorf("%w at index %d: missing id", ErrInvalidExpenseType, i)
		}
		if strings.TrimSpace(et.Name) == "" {
			return fmt.Errorf("%w at index %d: missing name", ErrInvalidExpenseType, i)
		}
		if _, dup := seen[et.ID]; dup {
			return fmt.Errorf("%w at index %d: %w %s", ErrInvalidExpenseType, i, ErrDuplicateID, et.ID)
		}
		seen[et.ID] = struct{}{}
	}
	return nil
}
