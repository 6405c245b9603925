package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
)

func resetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every transaction, category and expense type",
		Long: `Reset removes all stored data. Default categories and expense types
are recreated the next time the ledger is opened.

This is a destructive operation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.initStorage(cmd.Context())
			if err != nil {
				return err
			}

			if force, _ := cmd.Flags().GetBool("force"); !force {
				count := len(store.Transactions(cmd.Context()))
				say(cmd, cli.FormatWarning(fmt.Sprintf("This will delete %d transactions and all custom categories and expense types.", count)))
				ok, err := cli.Confirm(cmd.Context(), cli.NewNonBlockingReader(cmd.InOrStdin()), cmd.OutOrStdout(), "Are you sure you want to continue?")
				if err != nil {
					return err
				}
				if !ok {
					say(cmd, "Reset canceled.")
					return nil
				}
			}

			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			a.ledger = nil
			say(cmd, cli.FormatSuccess("All data deleted"))
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	return cmd
}
