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

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage income and expense transactions",
	}

	cmd.AddCommand(
		listTransactionsCmd(a),
		addTransactionCmd(a),
		updateTransactionCmd(a),
		deleteTransactionCmd(a),
	)
	return cmd
}

func listTransactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
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
			if typeName, _ := cmd.Flags().GetString("type"); typeName != "" {
				typ, err := model.ParseTransactionType(typeName)
				if err != nil {
					return err
				}
				transactions = report.FilterByType(transactions, typ)
			}

			if len(transactions) == 0 {
				say(cmd, cli.InfoStyle.Render("No transactions found. Use 'cashflow transactions add' to record one."))
				return nil
			}

			sort.SliceStable(transactions, func(i, j int) bool {
				if !transactions[i].Date.Equal(transactions[j].Date) {
					return transactions[i].Date.After(transactions[j].Date)
				}
				return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
			})

			categories := l.Categories()
			t := newTable(cmd.OutOrStdout(), "ID", "Date", "Description", "Category", "Amount", "Due")
			for _, tx := range transactions {
				due := ""
				if tx.DueDate != nil {
					due = a.format.Date(*tx.DueDate)
				}
				amount := a.format.SignedMoney(tx.Amount, tx.Type)
				t.row(
					tx.ID,
					a.format.Date(tx.Date),
					tx.Description,
					report.CategoryLabel(tx.Category, categories),
					cli.TypeStyle(tx.Type).Render(amount),
					due,
				)
			}
			if err := t.flush(); err != nil {
				return err
			}

			stats := report.Stats(transactions)
			say(cmd, "")
			say(cmd, fmt.Sprintf("%d transactions · income %s · expenses %s · balance %s",
				stats.TransactionCount,
				a.format.Money(stats.Income),
				a.format.Money(stats.Expenses),
				a.format.Money(stats.Balance)))
			return nil
		},
	}
	addPeriodFlags(cmd)
	cmd.Flags().String("type", "", "only income or expense")
	return cmd
}

// transactionFlags registers the editable transaction fields.
func transactionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("description", "d", "", "what the money was for")
	cmd.Flags().StringP("amount", "a", "", "amount, e.g. 1234.56, 1234,56 or 1.234,56 (1.234 is rejected as ambiguous)")
	cmd.Flags().StringP("type", "t", "", "income or expense")
	cmd.Flags().StringP("category", "c", "", "category id")
	cmd.Flags().StringP("expense-type", "e", "", "expense type id (expenses only)")
	cmd.Flags().String("date", "", "date, YYYY-MM-DD or DD/MM/YYYY")
	cmd.Flags().String("due", "", "due date; makes the transaction a deadline")
}

func addTransactionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Example: `  cashflow transactions add -t expense -a 1500 -c 7 -d "Aluguel" --due 2024-07-10
  cashflow transactions add -t income -a 5000 -c 1 -d "Salário" --date 05/07/2024`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			in, err := transactionInputFromFlags(cmd, a.currentDay())
			if err != nil {
				return err
			}

			tx, err := l.AddTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (ID: %s)",
				a.format.TypeLabel(tx.Type), a.format.Money(tx.Amount), tx.ID)))
			return nil
		},
	}
	transactionFlags(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func transactionInputFromFlags(cmd *cobra.Command, today model.Date) (model.TransactionInput, error) {
	in := model.TransactionInput{Date: today}

	typeName, _ := cmd.Flags().GetString("type")
	typ, err := model.ParseTransactionType(typeName)
	if err != nil {
		return in, err
	}
	in.Type = typ

	amountText, _ := cmd.Flags().GetString("amount")
	if in.Amount, err = parseAmount(amountText); err != nil {
		return in, err
	}

	in.Description, _ = cmd.Flags().GetString("description")
	in.Category, _ = cmd.Flags().GetString("category")
	if typ == model.TransactionTypeExpense {
		in.ExpenseType, _ = cmd.Flags().GetString("expense-type")
		if in.ExpenseType == "" {
			in.ExpenseType = model.ExpenseTypeNormal
		}
	}

	if s, ok := stringFlag(cmd, "date"); ok {
		if in.Date, err = parseDate(*s); err != nil {
			return in, err
		}
	}
	if s, ok := stringFlag(cmd, "due"); ok && *s != "" {
		due, err := parseDate(*s)
		if err != nil {
			return in, err
		}
		in.DueDate = &due
	}
	return in, nil
}

func updateTransactionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Long:  `Only the flags given are changed. Use --clear-due to remove the due date.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := l.Transaction(id); !ok {
				return common.NewUserError(fmt.Sprintf("transaction %q does not exist", id), common.ErrNotFound)
			}

			patch, err := transactionPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				say(cmd, cli.FormatInfo("Nothing to change."))
				return nil
			}
			if err := l.UpdateTransaction(cmd.Context(), id, patch); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Updated transaction "+id))
			return nil
		},
	}
	transactionFlags(cmd)
	cmd.Flags().Bool("clear-due", false, "remove the due date")
	return cmd
}

func transactionPatchFromFlags(cmd *cobra.Command) (model.TransactionPatch, error) {
	var patch model.TransactionPatch

	patch.Description, _ = stringFlag(cmd, "description")
	patch.Category, _ = stringFlag(cmd, "category")
	patch.ExpenseType, _ = stringFlag(cmd, "expense-type")

	if s, ok := stringFlag(cmd, "type"); ok {
		typ, err := model.ParseTransactionType(*s)
		if err != nil {
			return patch, err
		}
		patch.Type = &typ
	}
	if s, ok := stringFlag(cmd, "amount"); ok {
		amount, err := parseAmount(*s)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if s, ok := stringFlag(cmd, "date"); ok {
		d, err := parseDate(*s)
		if err != nil {
			return patch, err
		}
		patch.Date = &d
	}
	if s, ok := stringFlag(cmd, "due"); ok {
		d, err := parseDate(*s)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &d
	}
	patch.ClearDueDate, _ = cmd.Flags().GetBool("clear-due")
	return patch, nil
}

func deleteTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and its deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := l.Transaction(id); !ok {
				return common.NewUserError(fmt.Sprintf("transaction %q does not exist", id), common.ErrNotFound)
			}
			if err := l.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Deleted transaction "+id))
			return nil
		},
	}
}
