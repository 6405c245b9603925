package main

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

var errInvalidAmount = errors.New("invalid amount")

// parseDate accepts YYYY-MM-DD and the Brazilian DD/MM/YYYY.
func parseDate(s string) (model.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return model.DateOf(t), nil
	}
	return model.ParseDate(s)
}

// dotThousands matches amounts like "1.234" or "12.345.678" whose dots can
// only be read as thousands separators.
var dotThousands = regexp.MustCompile(`^[1-9]\d{0,2}(\.\d{3})+$`)

// parseAmount accepts "1234.56", "1234,56" and "1.234,56". A dot before
// exactly three digits with no comma, as in "1.234", is rejected: it reads
// as 1234 in pt-BR and as 1.234 elsewhere.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), cli.CurrencySymbol))
	if dotThousands.MatchString(s) {
		return decimal.Zero, common.NewUserError(
			fmt.Sprintf("ambiguous amount %q: write %s or %s,00", s, strings.ReplaceAll(s, ".", ""), s),
			fmt.Errorf("%w: %q", errInvalidAmount, s))
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %w", errInvalidAmount, model.ErrNegativeValue)
	}
	return d, nil
}

// addPeriodFlags registers --year and --month on cmd.
func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "only this year")
	cmd.Flags().Int("month", 0, "only this month (1-12)")
}

func periodFromFlags(cmd *cobra.Command) (model.Period, error) {
	year, _ := cmd.Flags().GetInt("year")
	month, _ := cmd.Flags().GetInt("month")
	p := model.Period{Year: year, Month: time.Month(month)}
	if err := p.Validate(); err != nil {
		return model.Period{}, common.NewUserError("invalid period selection", err)
	}
	return p, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)

// table writes tab-aligned rows under a bold header.
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
	}
	t.row(styled...)
	return t
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func stringFlag(cmd *cobra.Command, name string) (*string, bool) {
	if !cmd.Flags().Changed(name) {
		return nil, false
	}
	v, _ := cmd.Flags().GetString(name)
	return &v, true
}

func say(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
