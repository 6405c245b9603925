package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/export"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to a spreadsheet",
	}
	cmd.AddCommand(
		exportFormatCmd(a, "xlsx", "Export a workbook with transactions, summary, evolution and deadlines",
			func(e *export.Exporter, w io.Writer, req export.Request) error { return e.WriteXLSX(w, req) }),
		exportFormatCmd(a, "csv", "Export transactions as CSV",
			func(e *export.Exporter, w io.Writer, req export.Request) error { return e.WriteCSV(w, req) }),
	)
	return cmd
}

type writeFunc func(e *export.Exporter, w io.Writer, req export.Request) error

func exportFormatCmd(a *app, format, short string, write writeFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   format,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}
			period, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = "cashflow." + format
			}

			req := export.Request{
				Snapshot: l.Snapshot(),
				Period:   period,
				Today:    a.currentDay(),
			}

			if output == "-" {
				return write(export.New(a.format), cmd.OutOrStdout(), req)
			}

			f, err := os.Create(output) //nolint:gosec // path comes from the user
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := write(export.New(a.format), f, req); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			slog.Info("exported ledger", "format", format, "file", output)
			say(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %s to %s", a.format.Period(period), output)))
			return nil
		},
	}
	addPeriodFlags(cmd)
	cmd.Flags().StringP("output", "o", "", `output file ("-" for stdout)`)
	return cmd
}
