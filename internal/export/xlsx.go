package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/cashflow/internal/report"
)

// Sheet names of the workbook.
const (
	SheetTransactions = "Transações"
	SheetSummary      = "Resumo"
	SheetEvolution    = "Evolução"
	SheetDeadlines    = "Vencimentos"
)

// Built-in number format "#,##0.00".
const moneyFormat = 4

type styles struct {
	header int
	money  int
}

// WriteXLSX writes a workbook with the selected transactions, the summary,
// the monthly evolution and every deadline.
func (e *Exporter) WriteXLSX(w io.Writer, req Request) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetEvolution, SheetDeadlines} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	writers := []func(*excelize.File, styles, Request) error{
		e.writeTransactions,
		e.writeSummary,
		e.writeEvolution,
		e.writeDeadlines,
	}
	for _, write := range writers {
		if err := write(f, st, req); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E5E7EB"}},
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create money style: %w", err)
	}
	return styles{header: header, money: money}, nil
}

// table writes a header row followed by data rows starting at row 2. Columns
// listed in moneyCols get the money number format.
func table(f *excelize.File, st styles, sheet string, header []any, data [][]any, moneyCols ...int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, st.header); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	if len(data) > 0 {
		for _, col := range moneyCols {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(data)+1)
			if err := f.SetCellStyle(sheet, top, bottom, st.money); err != nil {
				return fmt.Errorf("failed to style %s amounts: %w", sheet, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}
	return nil
}

func (e *Exporter) writeTransactions(f *excelize.File, st styles, req Request) error {
	header := []any{"Data", "Descrição", "Tipo", "Categoria", "Tipo de despesa", "Valor", "Vencimento"}

	var data [][]any
	for _, t := range rows(req) {
		expenseType := ""
		if t.IsExpense() {
			expenseType = report.ExpenseTypeLabel(t.ExpenseType, req.Snapshot.ExpenseTypes)
		}
		due := ""
		if t.DueDate != nil {
			due = e.format.Date(*t.DueDate)
		}
		data = append(data, []any{
			e.format.Date(t.Date),
			t.Description,
			e.format.TypeLabel(t.Type),
			report.CategoryLabel(t.Category, req.Snapshot.Categories),
			expenseType,
			t.Amount.InexactFloat64(),
			due,
		})
	}
	if err := table(f, st, SheetTransactions, header, data, 6); err != nil {
		return err
	}
	return f.SetColWidth(SheetTransactions, "B", "B", 40)
}

func (e *Exporter) writeSummary(f *excelize.File, st styles, req Request) error {
	deadlines := report.Deadlines(req.Snapshot.Transactions, req.Today)
	summary := report.Summarize(req.Snapshot.Transactions, deadlines, req.Today)
	stats := report.Stats(report.FilterByPeriod(req.Snapshot.Transactions, req.Period))
	period := e.format.Period(req.Period)

	data := [][]any{
		{"Receitas (total)", summary.TotalIncome.InexactFloat64()},
		{"Despesas (total)", summary.TotalExpenses.InexactFloat64()},
		{"Saldo (total)", summary.Balance.InexactFloat64()},
		{"Receitas (" + period + ")", stats.Income.InexactFloat64()},
		{"Despesas (" + period + ")", stats.Expenses.InexactFloat64()},
		{"Saldo (" + period + ")", stats.Balance.InexactFloat64()},
		{"Transações (" + period + ")", stats.TransactionCount},
		{"Vencimentos pendentes", summary.PendingDeadlines},
		{"Vencimentos atrasados", summary.OverdueDeadlines},
	}
	if err := table(f, st, SheetSummary, []any{"Indicador", "Valor"}, data); err != nil {
		return err
	}

	top, _ := excelize.CoordinatesToCellName(2, 2)
	bottom, _ := excelize.CoordinatesToCellName(2, 7)
	if err := f.SetCellStyle(SheetSummary, top, bottom, st.money); err != nil {
		return fmt.Errorf("failed to style summary amounts: %w", err)
	}
	return f.SetColWidth(SheetSummary, "A", "A", 32)
}

func (e *Exporter) writeEvolution(f *excelize.File, st styles, req Request) error {
	evolution := report.MonthlyEvolutionForYear(req.Snapshot.Transactions, req.Period.Year)

	data := make([][]any, 0, len(evolution))
	for _, p := range evolution {
		data = append(data, []any{
			e.format.MonthName(p.Month),
			p.Income.InexactFloat64(),
			p.Expenses.InexactFloat64(),
			p.Balance.InexactFloat64(),
		})
	}
	return table(f, st, SheetEvolution, []any{"Mês", "Receitas", "Despesas", "Saldo"}, data, 2, 3, 4)
}

func (e *Exporter) writeDeadlines(f *excelize.File, st styles, req Request) error {
	deadlines := report.Deadlines(req.Snapshot.Transactions, req.Today)

	data := make([][]any, 0, len(deadlines))
	for _, d := range deadlines {
		data = append(data, []any{
			e.format.Date(d.DueDate),
			d.Title,
			report.CategoryLabel(d.Category, req.Snapshot.Categories),
			e.format.StatusLabel(d.Status),
			d.Amount.InexactFloat64(),
		})
	}
	return table(f, st, SheetDeadlines, []any{"Vencimento", "Descrição", "Categoria", "Situação", "Valor"}, data, 5)
}

// Sheets lists the sheet names WriteXLSX produces, in order.
func Sheets() []string {
	return []string{SheetTransactions, SheetSummary, SheetEvolution, SheetDeadlines}
}
