package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/ledger"
	"github.com/Veraticus/finance-pro/internal/model"
)

func addCmd() *cobra.Command {
	var (
		income      bool
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense or income",
		Long: `Record a new transaction. Amounts accept a comma or a dot as the
decimal separator. Without --category the first category of the type is used.`,
		Example: `  # Groceries for 12,50
  finpro add 12,50 --category Продукты --description Евроопт

  # Salary received last Friday
  finpro add 2500 --income --category Зарплата --date 2026-10-16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := ledger.ParseAmount(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Invalid amount %q", args[0]), err)
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}

			prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			s, err := openSession(ctx, nil, app.WithVibrator(prompter))
			if err != nil {
				return err
			}
			defer s.Close()

			txType := transactionType(income)
			name, err := resolveCategory(s.ctrl, txType, category)
			if err != nil {
				return err
			}

			if !when.IsZero() {
				// keep the time of day so same-day entries stay ordered
				now := s.ctrl.Now().In(time.Local)
				when = time.Date(when.Year(), when.Month(), when.Day(),
					now.Hour(), now.Minute(), now.Second(), 0, time.Local)
			}

			txn, err := s.ctrl.AddTransaction(ctx, model.TransactionDraft{
				Type:        txType,
				Amount:      amount,
				Category:    name,
				Description: strings.TrimSpace(description),
				Date:        when,
			})
			if err != nil {
				return common.NewUserError("Could not add the transaction", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Added"))
			fmt.Fprintln(out, "  "+s.renderer.TransactionLine(txn, cli.ResolveCategory(s.ctrl.LookupCategory, txn)))
			fmt.Fprintln(out, "  "+cli.SubtleStyle.Render(txn.ID))
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.renderer.Balance(s.ctrl.Totals()))

			return s.saveWarning()
		},
	}

	cmd.Flags().BoolVarP(&income, "income", "i", false, "record an income instead of an expense")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "optional note")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: now)")

	return cmd
}

// resolveCategory returns the stored spelling of name for type t, or the
// first category of t when name is empty.
func resolveCategory(ctrl *app.Controller, t model.TransactionType, name string) (string, error) {
	categories := ctrl.EffectiveCategories(t)
	name = strings.TrimSpace(name)
	if name == "" {
		if len(categories) == 0 {
			return "", common.NewUserError("No categories available", nil)
		}
		return categories[0].Name, nil
	}

	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c.Name, nil
		}
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return "", common.NewUserError(
		fmt.Sprintf("Unknown %s category %q. Available: %s. Use 'finpro categories add' to create one.",
			strings.ToLower(string(t)), name, strings.Join(names, ", ")),
		nil)
}

func removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a transaction",
		Long:    `Delete a transaction by its id. The ids are shown by 'finpro history'.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := strings.TrimSpace(args[0])

			prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			prompter.AssumeYes(yes)

			s, err := openSession(ctx, nil, app.WithConfirmer(prompter), app.WithVibrator(prompter))
			if err != nil {
				return err
			}
			defer s.Close()

			var target *model.Transaction
			for _, t := range s.ctrl.Transactions() {
				if t.ID == id {
					target = &t
					break
				}
			}
			if target == nil {
				return common.NewUserError(fmt.Sprintf("No transaction with id %q", id), nil)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "  "+s.renderer.TransactionLine(*target, cli.ResolveCategory(s.ctrl.LookupCategory, *target)))

			if !s.ctrl.RemoveTransaction(ctx, id) {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("Deletion cancelled."))
				return nil
			}

			fmt.Fprintln(out, cli.FormatSuccess("Deleted "+id))
			return s.saveWarning()
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return common.NewUserError("--limit must not be negative", nil)
			}

			s, err := openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintln(cmd.OutOrStdout(), s.renderer.History(s.ctrl.Transactions(), s.ctrl.LookupCategory, limit))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries (0 shows all)")

	return cmd
}
