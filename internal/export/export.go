// Package export writes ledger data to spreadsheet files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
)

// Request selects what to export. Transactions are filtered by Period; the
// summary sheet always covers everything.
type Request struct {
	Snapshot model.Snapshot
	Period   model.Period
	Today    model.Date
}

// Exporter renders a Request as CSV or XLSX.
type Exporter struct {
	format *cli.Formatter
}

// New creates an exporter that labels types, statuses and months with f.
func New(f *cli.Formatter) *Exporter {
	if f == nil {
		f = cli.DefaultFormatter()
	}
	return &Exporter{format: f}
}

var csvHeader = []string{"id", "date", "description", "type", "category", "expenseType", "amount", "dueDate"}

// WriteCSV writes the selected transactions, oldest first. Dates are ISO
// and amounts use a dot with two decimals so the file stays machine readable.
func (e *Exporter) WriteCSV(w io.Writer, req Request) error {
	// UTF-8 BOM so spreadsheet programs detect the encoding.
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range rows(req) {
		record := []string{
			t.ID,
			t.Date.String(),
			t.Description,
			string(t.Type),
			report.CategoryLabel(t.Category, req.Snapshot.Categories),
			"",
			t.Amount.StringFixed(2),
			"",
		}
		if t.IsExpense() {
			record[5] = report.ExpenseTypeLabel(t.ExpenseType, req.Snapshot.ExpenseTypes)
		}
		if t.DueDate != nil {
			record[7] = t.DueDate.String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", t.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// rows returns the selected transactions sorted by date then creation time.
func rows(req Request) []model.Transaction {
	selected := report.FilterByPeriod(req.Snapshot.Transactions, req.Period)
	sort.SliceStable(selected, func(i, j int) bool {
		if !selected[i].Date.Equal(selected[j].Date) {
			return selected[i].Date.Before(selected[j].Date)
		}
		return selected[i].CreatedAt.Before(selected[j].CreatedAt)
	})
	return selected
}
