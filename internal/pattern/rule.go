// Package pattern assigns categories to imported transactions by matching
// their descriptions against ordered rules.
package pattern

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

// ErrInvalidRule is returned for rules that cannot be compiled or validated.
var ErrInvalidRule = errors.New("invalid import rule")

// Amount conditions.
const (
	AmountAny     = "any"
	AmountLess    = "lt"
	AmountAtMost  = "le"
	AmountEqual   = "eq"
	AmountAtLeast = "ge"
	AmountMore    = "gt"
	AmountRange   = "range"
)

// Rule assigns Category (and, for expenses, ExpenseType) to transactions
// whose description matches Pattern. Descriptions are lowercased and
// stripped of accents before matching. Plain patterns match as a substring.
// An empty Type matches both types.
type Rule struct {
	Name            string                `mapstructure:"name"`
	Pattern         string                `mapstructure:"pattern"`
	Category        string                `mapstructure:"category"`
	ExpenseType     string                `mapstructure:"expense_type"`
	Type            model.TransactionType `mapstructure:"type"`
	AmountCondition string                `mapstructure:"amount_condition"`
	AmountValue     string                `mapstructure:"amount_value"`
	AmountMin       string                `mapstructure:"amount_min"`
	AmountMax       string                `mapstructure:"amount_max"`
	Priority        int                   `mapstructure:"priority"`
	Regex           bool                  `mapstructure:"regex"`
}

func (r Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Pattern
}

// ValidateRules checks that every rule names an existing category whose
// type agrees with the rule's type.
func ValidateRules(rules []Rule, categories []model.Category) error {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for _, r := range rules {
		c, ok := byID[r.Category]
		if !ok {
			return fmt.Errorf("%w: rule %q references unknown category %q", ErrInvalidRule, r.label(), r.Category)
		}
		if r.Type != "" && c.Type != r.Type {
			return fmt.Errorf("%w: rule %q is for %s but category %q is %s", ErrInvalidRule, r.label(), r.Type, c.Name, c.Type)
		}
	}
	return nil
}

func parseAmount(rule Rule, field, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // an unset bound is valid
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: rule %q has a bad %s %q", ErrInvalidRule, rule.label(), field, s)
	}
	return &d, nil
}
