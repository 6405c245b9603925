package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/ofx"
	"github.com/Veraticus/cashflow/internal/pattern"
	"github.com/Veraticus/cashflow/internal/report"
)

var errNoImportFiles = errors.New("no files found to import")

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank files",
	}
	cmd.AddCommand(importOFXCmd(a))
	return cmd
}

func importOFXCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import transactions from OFX/QFX statements",
		Long: `Import transactions from OFX or QFX statements exported by your bank.
Credits become income and debits become expenses. Transactions that are
already in the ledger are skipped.

Examples:
  cashflow import ofx ~/Downloads/extrato_junho.ofx
  cashflow import ofx ~/Downloads/*.ofx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			noRules, _ := cmd.Flags().GetBool("no-rules")
			incomeCategory, _ := cmd.Flags().GetString("income-category")
			expenseCategory, _ := cmd.Flags().GetString("expense-category")

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			l, err := a.openLedger(cmd.Context())
			if err != nil {
				return err
			}

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interrupts.HandleInterrupts(cmd.Context(), "import")

			parser := ofx.NewParser(ofx.WithCategories(incomeCategory, expenseCategory))
			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Reading statements...[reset]"),
			)

			var entries []ofx.Entry
			for _, path := range files {
				if ctx.Err() != nil {
					break
				}
				found, err := parseStatement(ctx, parser, path)
				if err != nil {
					slog.Error("failed to parse statement", "file", path, "error", err)
				} else {
					entries = append(entries, found...)
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()
			say(cmd, "")

			if interrupts.WasInterrupted() {
				return common.NewUserError("import interrupted; nothing was saved", ctx.Err())
			}

			fresh, skipped := ofx.Deduplicate(entries, l.Transactions())
			if len(fresh) == 0 {
				say(cmd, cli.FormatInfo(fmt.Sprintf("Nothing new to import (%d already in the ledger).", skipped)))
				return nil
			}

			inputs := ofx.Inputs(fresh)
			if !noRules {
				matcher, err := a.importMatcher(l.Categories())
				if err != nil {
					return err
				}
				categorized := matcher.Categorize(inputs)
				slog.Debug("applied import rules", "categorized", categorized, "total", len(inputs))
			}

			if dryRun {
				say(cmd, cli.FormatTitle(fmt.Sprintf("Would import %d transactions (%d skipped)", len(fresh), skipped)))
				previewEntries(cmd, a, fresh, inputs)
				return nil
			}

			added, err := l.ImportTransactions(ctx, inputs)
			if err != nil {
				return err
			}
			say(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d skipped)", len(added), skipped)))
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "preview the import without saving")
	cmd.Flags().String("income-category", ofx.DefaultIncomeCategory, "category id for credits")
	cmd.Flags().String("expense-category", ofx.DefaultExpenseCategory, "category id for debits")
	cmd.Flags().Bool("no-rules", false, "skip the import rules and use only the default categories")
	return cmd
}

// expandFiles resolves glob patterns. Patterns that match nothing are kept
// when they name an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("no files found matching pattern", "pattern", pattern)
		}
	}
	if len(files) == 0 {
		return nil, common.NewUserError("no statement files found", errNoImportFiles)
	}
	return files, nil
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close statement", "file", path, "error", cerr)
		}
	}()
	return parser.ParseFile(ctx, f)
}

// importMatcher builds the matcher from the configured rules, or from the
// default rules when none are configured.
func (a *app) importMatcher(categories []model.Category) (*pattern.Matcher, error) {
	rules := pattern.DefaultRules()
	if a.v.IsSet(config.KeyImportRules) {
		rules = nil
		if err := a.v.UnmarshalKey(config.KeyImportRules, &rules); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, config.KeyImportRules, err)
		}
	}
	if err := pattern.ValidateRules(rules, categories); err != nil {
		return nil, common.NewUserError(err.Error(), err)
	}
	return pattern.NewMatcher(rules)
}

func previewEntries(cmd *cobra.Command, a *app, entries []ofx.Entry, inputs []model.TransactionInput) {
	categories := a.ledger.Categories()
	t := newTable(cmd.OutOrStdout(), "Date", "Description", "Category", "Amount", "Account")
	for i, in := range inputs {
		t.row(
			a.format.Date(in.Date),
			in.Description,
			report.CategoryLabel(in.Category, categories),
			cli.TypeStyle(in.Type).Render(a.format.SignedMoney(in.Amount, in.Type)),
			entries[i].AccountID,
		)
	}
	if err := t.flush(); err != nil {
		slog.Warn("failed to write preview", "error", err)
	}
}

