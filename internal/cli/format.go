package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

// CurrencySymbol prefixes every amount. All amounts are in Brazilian reais;
// the locale only changes digit grouping, dates and month names.
const CurrencySymbol = "R$"

var portugueseMonths = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Formatter renders amounts, dates and labels for one locale.
type Formatter struct {
	printer    *message.Printer
	dateLayout string
	portuguese bool
}

// NewFormatter creates a formatter for a BCP 47 locale such as "pt-BR".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %w", common.ErrInvalidConfig, locale, err)
	}

	base, _ := tag.Base()
	region, _ := tag.Region()
	f := &Formatter{
		printer:    message.NewPrinter(tag),
		dateLayout: "02/01/2006",
		portuguese: base.String() == "pt",
	}
	if base.String() == "en" && region.String() == "US" {
		f.dateLayout = "01/02/2006"
	}
	return f, nil
}

// DefaultFormatter is the pt-BR formatter.
func DefaultFormatter() *Formatter {
	f, _ := NewFormatter("pt-BR")
	return f
}

// Number formats a decimal with two places and locale grouping.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Abs().Round(2).InexactFloat64(), number.Scale(2)))
}

// Money formats an amount as currency, for example "R$ 1.234,50".
func (f *Formatter) Money(d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + CurrencySymbol + " " + f.Number(d)
}

// SignedMoney formats a transaction amount with + for income and - for expenses.
func (f *Formatter) SignedMoney(d decimal.Decimal, t model.TransactionType) string {
	if t == model.TransactionTypeExpense {
		return "-" + CurrencySymbol + " " + f.Number(d)
	}
	return "+" + CurrencySymbol + " " + f.Number(d)
}

// Date formats a calendar day in the locale's order. The zero date is "-".
func (f *Formatter) Date(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(f.dateLayout)
}

// MonthName returns the localized name of a month.
func (f *Formatter) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	if f.portuguese {
		return portugueseMonths[m-1]
	}
	return m.String()
}

// Period describes a period selection for headings.
func (f *Formatter) Period(p model.Period) string {
	all := "all time"
	allMonths := "every year"
	if f.portuguese {
		all = "todo o período"
		allMonths = "todos os anos"
	}
	switch {
	case p.HasYear() && p.HasMonth():
		return fmt.Sprintf("%s %d", f.MonthName(p.Month), p.Year)
	case p.HasYear():
		return fmt.Sprintf("%d", p.Year)
	case p.HasMonth():
		return fmt.Sprintf("%s (%s)", f.MonthName(p.Month), allMonths)
	default:
		return all
	}
}

// TypeLabel names a transaction type.
func (f *Formatter) TypeLabel(t model.TransactionType) string {
	if !f.portuguese {
		return string(t)
	}
	switch t {
	case model.TransactionTypeIncome:
		return "Receita"
	case model.TransactionTypeExpense:
		return "Despesa"
	default:
		return string(t)
	}
}

// StatusLabel names a deadline status.
func (f *Formatter) StatusLabel(s model.DeadlineStatus) string {
	if !f.portuguese {
		return string(s)
	}
	switch s {
	case model.DeadlineStatusPending:
		return "Pendente"
	case model.DeadlineStatusOverdue:
		return "Vencido"
	case model.DeadlineStatusPaid:
		return "Pago"
	default:
		return string(s)
	}
}

// DueIn describes how far away a due date is, for example "em 3 dias".
func (f *Formatter) DueIn(days int) string {
	if f.portuguese {
		switch {
		case days == 0:
			return "vence hoje"
		case days == 1:
			return "amanhã"
		case days > 1:
			return fmt.Sprintf("em %d dias", days)
		case days == -1:
			return "venceu ontem"
		default:
			return fmt.Sprintf("há %d dias", -days)
		}
	}
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}
