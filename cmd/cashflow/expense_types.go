package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/ledger"
	"github.com/Veraticus/cashflow/internal/model"
)

func expenseTypesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense-types",
		Short: "Manage expense types",
		Long: `Expense types classify expenses further, e.g. money set aside as a reserve.
The built-in types normal, reserva and devolucao cannot be deleted.`,
	}

	cmd.AddCommand(
		listExpenseTypesCmd(a),
		addExpenseTypeCmd(a),
		updateExpenseTypeCmd(a),
		deleteExpenseTypeCmd(a),
	)
	return cmd
}

func listExpenseTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expense types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "ID", "Name", "Description", "Color", "")
			for _, et := range l.ExpenseTypes() {
				builtin := ""
				if et.IsDefault {
					builtin = cli.SubtleStyle.Render("built-in")
				}
				t.row(et.ID, et.Name, et.Description, cli.Swatch(et.Color), builtin)
			}
			return t.flush()
		},
	}
}

func addExpenseTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom expense type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")
			color, _ := cmd.Flags().GetString("color")

			et, err := l.AddExpenseType(cmd.Context(), model.ExpenseTypeInput{
				Name:        args[0],
				Description: description,
				Color:       color,
			})
			if err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess(fmt.Sprintf("Created expense type %q (ID: %s)", et.Name, et.ID)))
			return nil
		},
	}
	cmd.Flags().String("description", "", "what the type is for")
	cmd.Flags().String("color", "#6b7280", "display color")
	return cmd
}

func updateExpenseTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an expense type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if !hasExpenseType(l.ExpenseTypes(), id) {
				return common.NewUserError(fmt.Sprintf("expense type %q does not exist", id), common.ErrNotFound)
			}

			var patch model.ExpenseTypePatch
			patch.Name, _ = stringFlag(cmd, "name")
			patch.Description, _ = stringFlag(cmd, "description")
			patch.Color, _ = stringFlag(cmd, "color")

			if err := l.UpdateExpenseType(cmd.Context(), id, patch); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess("Updated expense type "+id))
			return nil
		},
	}
	cmd.Flags().String("name", "", "new name")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("color", "", "new color")
	return cmd
}

func deleteExpenseTypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom expense type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if !hasExpenseType(l.ExpenseTypes(), id) {
				return common.NewUserError(fmt.Sprintf("expense type %q does not exist", id), common.ErrNotFound)
			}
			if err := l.DeleteExpenseType(cmd.Context(), id); err != nil {
				if errors.Is(err, ledger.ErrBuiltinExpenseType) {
					return common.NewUserError(fmt.Sprintf("%q is a built-in expense type and cannot be deleted", id), err)
				}
				return err
			}
			say(cmd, cli.FormatSuccess("Deleted expense type "+id))
			return nil
		},
	}
}

func hasExpenseType(expenseTypes []model.ExpenseType, id string) bool {
	for _, et := range expenseTypes {
		if et.ID == id {
			return true
		}
	}
	return false
}
