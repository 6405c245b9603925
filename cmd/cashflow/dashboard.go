package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
	"github.com/Veraticus/cashflow/internal/tui"
)

func dashboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show balances, breakdowns and upcoming deadlines",
		Long: `Show the overall balance, the figures of the selected period, the
category breakdown and upcoming deadlines. With --interactive the
dashboard opens in a terminal UI where the period can be changed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			period, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}

			if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
				return tui.Run(cmd.Context(), l,
					tui.WithFormatter(a.format),
					tui.WithToday(a.currentDay),
					tui.WithPeriod(period),
				)
			}

			d := l.Dashboard(period, a.currentDay())
			say(cmd, renderDashboard(a.format, d))
			return nil
		},
	}
	addPeriodFlags(cmd)
	cmd.Flags().BoolP("interactive", "i", false, "open the interactive dashboard")
	return cmd
}

func renderDashboard(f *cli.Formatter, d report.Dashboard) string {
	if !d.HasTransactions {
		return cli.InfoStyle.Render("No transactions yet. Use 'cashflow transactions add' or 'cashflow import ofx' to get started.")
	}

	var sections []string

	overall := strings.Join([]string{
		"Income:   " + cli.TypeStyle(model.TransactionTypeIncome).Render(f.Money(d.Summary.TotalIncome)),
		"Expenses: " + cli.TypeStyle(model.TransactionTypeExpense).Render(f.Money(d.Summary.TotalExpenses)),
		"Balance:  " + f.Money(d.Summary.Balance),
	}, "\n")
	sections = append(sections, cli.RenderBox(cli.WalletIcon+" Overall", overall))

	period := strings.Join([]string{
		"Income:       " + f.Money(d.Stats.Income),
		"Expenses:     " + f.Money(d.Stats.Expenses),
		"Balance:      " + f.Money(d.Stats.Balance),
		fmt.Sprintf("Transactions: %d", d.Stats.TransactionCount),
	}, "\n")
	sections = append(sections, cli.RenderBox(cli.ChartIcon+" "+f.Period(d.Period), period))

	if len(d.Categories) > 0 {
		var lines []string
		for _, c := range d.Categories {
			lines = append(lines, fmt.Sprintf("%-20s %s", c.Name, f.Money(c.Amount)))
		}
		sections = append(sections, cli.RenderBox("Expenses by category", strings.Join(lines, "\n")))
	}

	if len(d.ExpenseTypes) > 0 {
		var lines []string
		for _, et := range d.ExpenseTypes {
			lines = append(lines, fmt.Sprintf("%-20s %s", et.Name, f.Money(et.Amount)))
		}
		sections = append(sections, cli.RenderBox("Expenses by type", strings.Join(lines, "\n")))
	}

	deadlines := []string{
		fmt.Sprintf("Pending: %d", d.DeadlineStats.Pending),
		"Overdue: " + cli.StatusStyle(model.DeadlineStatusOverdue).Render(fmt.Sprint(d.DeadlineStats.Overdue)),
	}
	for _, dl := range d.Deadlines {
		deadlines = append(deadlines, fmt.Sprintf("%s  %s  %s  %s",
			f.Date(dl.DueDate),
			dl.Title,
			f.Money(dl.Amount),
			cli.StatusStyle(dl.Status).Render(f.StatusLabel(dl.Status))))
	}
	sections = append(sections, cli.RenderBox(cli.CalendarIcon+" Deadlines", strings.Join(deadlines, "\n")))

	return strings.Join(sections, "\n")
}
