package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/storage"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the SQLite database up to the current schema",
		Long: `Run pending database migrations. Migrations also run automatically
whenever the database is opened; use --status to inspect the schema
version without changing anything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Backend != config.BackendSQLite {
				return common.NewUserError(
					fmt.Sprintf("migrations apply only to the sqlite backend (configured: %s)", a.cfg.Backend),
					common.ErrUnsupportedOperation)
			}

			status, _ := cmd.Flags().GetBool("status")
			if status {
				db, err := storage.NewSQLiteStorage(a.cfg.DatabasePath)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()

				version, err := db.SchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				say(cmd, fmt.Sprintf("Schema version %d of %d", version, storage.ExpectedSchemaVersion))
				if version > 0 {
					keys, err := db.Keys(cmd.Context())
					if err != nil {
						return err
					}
					say(cmd, "Stored collections: "+strings.Join(keys, ", "))
				}
				if version < storage.ExpectedSchemaVersion {
					say(cmd, cli.FormatWarning("Run 'cashflow migrate' to upgrade."))
				}
				return nil
			}

			if _, err := a.initStorage(cmd.Context()); err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess(fmt.Sprintf("Database %s is at schema version %d", a.cfg.DatabasePath, storage.ExpectedSchemaVersion)))
			return nil
		},
	}
	cmd.Flags().Bool("status", false, "show the schema version without migrating")
	return cmd
}
