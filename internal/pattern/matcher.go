package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/cashflow/internal/model"
)

type compiledRule struct {
	rule  Rule
	re    *regexp.Regexp
	value *decimal.Decimal
	min   *decimal.Decimal
	max   *decimal.Decimal
}

// Matcher evaluates transaction inputs against a fixed set of rules.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles rules. Rules are tried by descending priority; ties
// keep their given order.
func NewMatcher(rules []Rule) (*Matcher, error) {
	m := &Matcher{rules: make([]compiledRule, 0, len(rules))}

	for _, r := range rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %q has no pattern", ErrInvalidRule, r.Name)
		}
		c := compiledRule{rule: r}
		if r.Regex {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %q: %w", ErrInvalidRule, r.label(), err)
			}
			c.re = re
		}

		var err error
		if c.value, err = parseAmount(r, "amount_value", r.AmountValue); err != nil {
			return nil, err
		}
		if c.min, err = parseAmount(r, "amount_min", r.AmountMin); err != nil {
			return nil, err
		}
		if c.max, err = parseAmount(r, "amount_max", r.AmountMax); err != nil {
			return nil, err
		}
		switch r.AmountCondition {
		case "", AmountAny, AmountRange:
		case AmountLess, AmountAtMost, AmountEqual, AmountAtLeast, AmountMore:
			if c.value == nil {
				return nil, fmt.Errorf("%w: rule %q needs amount_value for %s", ErrInvalidRule, r.label(), r.AmountCondition)
			}
		default:
			return nil, fmt.Errorf("%w: rule %q has unknown amount condition %q", ErrInvalidRule, r.label(), r.AmountCondition)
		}

		m.rules = append(m.rules, c)
	}

	sort.SliceStable(m.rules, func(i, j int) bool {
		return m.rules[i].rule.Priority > m.rules[j].rule.Priority
	})
	return m, nil
}

// Match returns the first rule that matches in.
func (m *Matcher) Match(in model.TransactionInput) (Rule, bool) {
	description := fold(in.Description)
	for _, c := range m.rules {
		if c.rule.Type != "" && c.rule.Type != in.Type {
			continue
		}
		if !c.matchesDescription(description) || !c.matchesAmount(in.Amount) {
			continue
		}
		return c.rule, true
	}
	return Rule{}, false
}

// Categorize rewrites the category of every input a rule matches and
// returns how many were changed. A rule's expense type is applied to
// expenses only.
func (m *Matcher) Categorize(inputs []model.TransactionInput) int {
	changed := 0
	for i := range inputs {
		rule, ok := m.Match(inputs[i])
		if !ok {
			continue
		}
		inputs[i].Category = rule.Category
		if rule.ExpenseType != "" && inputs[i].Type == model.TransactionTypeExpense {
			inputs[i].ExpenseType = rule.ExpenseType
		}
		changed++
	}
	return changed
}

func (c compiledRule) matchesDescription(description string) bool {
	if c.re != nil {
		return c.re.MatchString(description)
	}
	return strings.Contains(description, fold(c.rule.Pattern))
}

// fold lowercases s and strips diacritics so "Farmácia" matches "farmacia".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func (c compiledRule) matchesAmount(amount decimal.Decimal) bool {
	switch c.rule.AmountCondition {
	case "", AmountAny:
		return true
	case AmountLess:
		return amount.LessThan(*c.value)
	case AmountAtMost:
		return amount.LessThanOrEqual(*c.value)
	case AmountEqual:
		return amount.Equal(*c.value)
	case AmountAtLeast:
		return amount.GreaterThanOrEqual(*c.value)
	case AmountMore:
		return amount.GreaterThan(*c.value)
	case AmountRange:
		if c.min != nil && amount.LessThan(*c.min) {
			return false
		}
		if c.max != nil && amount.GreaterThan(*c.max) {
			return false
		}
		return true
	}
	return false
}
