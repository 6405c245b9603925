package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
)

var version = "dev"

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cashflow",
		Short: "💰 Personal income, expense and deadline tracker",
		Long: `cashflow records income and expenses, tracks due dates as deadlines,
and derives summaries, category breakdowns and monthly evolution from them.

Everything is stored locally.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/cashflow/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.StringVar(&a.todayFlag, "today", "", "treat this date (YYYY-MM-DD) as today")

	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(
		transactionsCmd(a),
		deadlinesCmd(a),
		categoriesCmd(a),
		expenseTypesCmd(a),
		dashboardCmd(a),
		reportCmd(a),
		importCmd(a),
		exportCmd(a),
		migrateCmd(a),
		resetCmd(a),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received interrupt signal, shutting down")
		cancel()
	}()

	a := newApp(viper.New())
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close()
	cancel()

	if err != nil {
		msg := err.Error()
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			msg = userErr.UserMessage
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(msg))
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cashflow %s\n", version)
		},
	}
}
