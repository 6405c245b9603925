package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
)

func deadlinesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "View and edit deadlines",
		Long: `A deadline is a transaction with a due date. Editing a deadline edits
its transaction; deleting it removes only the due date.`,
	}

	cmd.AddCommand(
		listDeadlinesCmd(a),
		addDeadlineCmd(a),
		updateDeadlineCmd(a),
		deleteDeadlineCmd(a),
	)
	return cmd
}

func listDeadlinesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deadlines by due date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			period, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}

			today := a.currentDay()
			all := l.Deadlines(today)
			deadlines := all
			switch {
			case period.HasYear() && period.HasMonth():
				deadlines = report.DeadlinesInMonth(all, period.Year, period.Month)
			case !period.IsAll():
				deadlines = nil
				for _, d := range all {
					if period.Contains(d.DueDate) {
						deadlines = append(deadlines, d)
					}
				}
			}
			sort.SliceStable(deadlines, func(i, j int) bool {
				return deadlines[i].DueDate.Before(deadlines[j].DueDate)
			})

			stats := report.DeadlineStats(all, today)
			say(cmd, cli.FormatTitle(fmt.Sprintf("%s Deadlines", cli.CalendarIcon)))
			say(cmd, fmt.Sprintf("total %d · pending %s · overdue %s · due today %d · next 7 days %d",
				stats.Total,
				cli.StatusStyle(model.DeadlineStatusPending).Render(fmt.Sprint(stats.Pending)),
				cli.StatusStyle(model.DeadlineStatusOverdue).Render(fmt.Sprint(stats.Overdue)),
				stats.DueToday,
				stats.DueSoon))
			say(cmd, "")

			if len(deadlines) == 0 {
				say(cmd, cli.InfoStyle.Render("No deadlines. Give a transaction a due date with --due."))
				return nil
			}

			categories := l.Categories()
			t := newTable(cmd.OutOrStdout(), "ID", "Due", "Title", "Category", "Amount", "Status", "")
			for _, d := range deadlines {
				t.row(
					d.ID,
					a.format.Date(d.DueDate),
					d.Title,
					report.CategoryLabel(d.Category, categories),
					a.format.Money(d.Amount),
					cli.StatusStyle(d.Status).Render(a.format.StatusLabel(d.Status)),
					a.format.DueIn(d.DaysUntil(today)),
				)
			}
			return t.flush()
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func addDeadlineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Not supported: add a transaction with --due instead",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			return l.AddDeadline(cmd.Context(), model.DeadlinePatch{})
		},
	}
}

func updateDeadlineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the due date, amount, title or category of a deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if err := requireDeadline(l.Deadlines(a.currentDay()), id); err != nil {
				return err
			}

			var patch model.DeadlinePatch
			patch.Title, _ = stringFlag(cmd, "title")
			patch.Category, _ = stringFlag(cmd, "category")
			if s, ok := stringFlag(cmd, "amount"); ok {
				amount, err := parseAmount(*s)
				if err != nil {
					return err
				}
				patch.Amount = &amount
			}
			if s, ok := stringFlag(cmd, "due"); ok {
				due, err := parseDate(*s)
				if err != nil {
					return err
				}
				patch.DueDate = &due
			}

			if err := l.UpdateDeadline(cmd.Context(), id, patch); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Updated deadline "+id))
			return nil
		},
	}
	cmd.Flags().String("title", "", "new title (the transaction description)")
	cmd.Flags().String("amount", "", "new amount, e.g. 1234.56 or 1.234,56")
	cmd.Flags().String("due", "", "new due date")
	cmd.Flags().String("category", "", "new category id")
	return cmd
}

func deleteDeadlineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove the due date; the transaction is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if err := requireDeadline(l.Deadlines(a.currentDay()), id); err != nil {
				return err
			}
			if err := l.DeleteDeadline(cmd.Context(), id); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Removed the due date of transaction "+id))
			return nil
		},
	}
}

func requireDeadline(deadlines []model.Deadline, id string) error {
	if _, ok := report.FindDeadline(deadlines, id); !ok {
		return common.NewUserError(fmt.Sprintf("deadline %q does not exist", id), common.ErrNotFound)
	}
	return nil
}

