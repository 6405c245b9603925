package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
)

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Income and expense reports",
	}

	cmd.AddCommand(
		evolutionReportCmd(a),
		historyReportCmd(a),
		categoriesReportCmd(a),
	)
	return cmd
}

func evolutionReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evolution",
		Short: "Income and expenses per calendar month",
		Long: `Show income, expenses and balance for each calendar month. Without
--year the months of every year are added together.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")

			var points [12]model.MonthlyPoint
			title := "Monthly evolution (all years)"
			if year != 0 {
				points = report.MonthlyEvolutionForYear(l.Transactions(), year)
				title = fmt.Sprintf("Monthly evolution %d", year)
			} else {
				points = report.MonthlyEvolution(l.Transactions())
			}

			say(cmd, cli.FormatTitle(title))
			return writePoints(cmd, a.format, points[:], false)
		},
	}
	cmd.Flags().Int("year", 0, "only this year")
	return cmd
}

func historyReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Income and expenses for every month with activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			points := report.MonthlyHistory(l.Transactions())
			if len(points) == 0 {
				say(cmd, cli.InfoStyle.Render("No transactions yet."))
				return nil
			}
			say(cmd, cli.FormatTitle("Monthly history"))
			return writePoints(cmd, a.format, points, true)
		},
	}
}

func categoriesReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Totals per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			period, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}

			transactions := report.FilterByPeriod(l.Transactions(), period)
			totals := report.CategoryTotals(transactions, l.Categories())
			if len(totals) == 0 {
				say(cmd, cli.InfoStyle.Render("Nothing to report for "+a.format.Period(period)+"."))
				return nil
			}

			say(cmd, cli.FormatTitle("Categories · "+a.format.Period(period)))
			t := newTable(cmd.OutOrStdout(), "", "Category", "Type", "Total")
			for _, c := range totals {
				t.row(cli.Swatch(c.Color), c.Name, a.format.TypeLabel(c.Type), cli.TypeStyle(c.Type).Render(a.format.Money(c.Amount)))
			}
			return t.flush()
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func writePoints(cmd *cobra.Command, f *cli.Formatter, points []model.MonthlyPoint, withYear bool) error {
	t := newTable(cmd.OutOrStdout(), "Month", "Income", "Expenses", "Balance")
	for _, p := range points {
		month := f.MonthName(p.Month)
		if withYear {
			month = f.Period(model.Period{Year: p.Year, Month: p.Month})
		}
		t.row(
			month,
			cli.TypeStyle(model.TransactionTypeIncome).Render(f.Money(p.Income)),
			cli.TypeStyle(model.TransactionTypeExpense).Render(f.Money(p.Expenses)),
			f.Money(p.Balance),
		)
	}
	return t.flush()
}
