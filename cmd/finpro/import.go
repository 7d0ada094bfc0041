package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/ofx"
)

func importCmd() *cobra.Command {
	var (
		expenseCategory string
		incomeCategory  string
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.

Debits become expenses and credits become incomes. Statements carry no
categories, so every imported line gets the category chosen by the flags.
A checkpoint of the current data is taken before anything is written.`,
		Example: `  # Import one statement
  finpro import ~/Downloads/statement.ofx

  # Import every statement of a folder as groceries
  finpro import ~/Downloads/bank/*.qfx --expense-category Продукты`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import", "Nothing was saved.")
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			ctx = handler.HandleInterrupts(ctx)

			s, err := openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := ofx.Options{}
			if opts.ExpenseCategory, err = resolveCategory(s.ctrl, model.TypeExpense, expenseCategory); err != nil {
				return err
			}
			if opts.IncomeCategory, err = resolveCategory(s.ctrl, model.TypeIncome, incomeCategory); err != nil {
				return err
			}

			drafts, err := parseStatements(ctx, cmd, files, ofx.NewParser(opts, s.logger), s.cfg.Currency)
			if handler.WasInterrupted() {
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(drafts) == 0 {
				fmt.Fprintln(out, cli.FormatWarning("No transactions found."))
				return nil
			}

			if dryRun {
				preview := make([]model.Transaction, 0, len(drafts))
				for i := len(drafts) - 1; i >= 0; i-- {
					d := drafts[i]
					preview = append(preview, model.Transaction{
						ID:          fmt.Sprintf("#%d", i+1),
						Amount:      d.Amount,
						Type:        d.Type,
						Category:    d.Category,
						Description: d.Description,
						Date:        d.Date,
					})
				}
				fmt.Fprintln(out, s.renderer.History(preview, s.ctrl.LookupCategory, 0))
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported.", len(drafts))))
				return nil
			}

			if info, err := s.gateway.Checkpoints().AutoCheckpoint(ctx, "import"); err != nil {
				common.LogWarn("Continuing without a checkpoint", common.Fields{"error": err})
			} else if info != nil {
				fmt.Fprintln(out, cli.FormatInfo("Saved checkpoint "+info.ID))
			}

			added, importErr := s.ctrl.ImportTransactions(ctx, drafts)
			if importErr != nil {
				common.LogWarn("Some entries were skipped", common.Fields{"error": importErr})
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d of %d transactions", added, len(drafts))))
			fmt.Fprintln(out, s.renderer.Balance(s.ctrl.Totals()))
			return s.saveWarning()
		},
	}

	cmd.Flags().StringVar(&expenseCategory, "expense-category", "", "category for debits (default: first expense category)")
	cmd.Flags().StringVar(&incomeCategory, "income-category", "", "category for credits (default: first income category)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")

	return cmd
}

// expandFiles expands glob patterns. Patterns without matches are kept
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
			common.LogWarn("No files found matching pattern", common.Fields{"pattern": pattern})
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", nil)
	}
	return files, nil
}

// parseStatements parses every file in order. Files that fail to parse
// are reported and skipped; the drafts of all other files are returned
// oldest first within each file.
func parseStatements(ctx context.Context, cmd *cobra.Command, files []string, parser *ofx.Parser, currency string) ([]model.TransactionDraft, error) {
	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Reading statements")

	var (
		drafts []model.TransactionDraft
		failed []error
	)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stmt, err := parseFile(ctx, parser, path)
		if err != nil {
			common.LogError(err, "Failed to parse statement", common.Fields{"file": path})
			failed = append(failed, fmt.Errorf("%s: %w", filepath.Base(path), err))
		} else {
			if stmt.Currency != "" && currency != "" && stmt.Currency != currency {
				common.LogDebug("Statement currency differs from the display currency", common.Fields{
					"file":      filepath.Base(path),
					"statement": stmt.Currency,
					"display":   currency,
				})
			}
			common.LogInfo("Processed file", common.Fields{
				"file":         filepath.Base(path),
				"accounts":     len(stmt.Accounts),
				"transactions": len(stmt.Drafts),
			})
			drafts = append(drafts, stmt.Drafts...)
		}

		_ = bar.Add(1)
	}
	fmt.Fprintln(cmd.ErrOrStderr())

	if len(failed) == len(files) {
		return nil, common.NewUserError("No statement could be read", errors.Join(failed...))
	}
	return drafts, nil
}

func parseFile(ctx context.Context, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(filepath.Clean(path)) // #nosec G304 -- user supplied statement
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return parser.ParseFile(ctx, f)
}
