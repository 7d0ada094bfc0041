package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/common"
)

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all data with the example entries",
		Long: `Reset removes every transaction and custom category and restores the two
example entries a fresh install starts with.

An automatic checkpoint is taken first, so 'finpro checkpoint restore' can
undo the reset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s, err := openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer s.Close()

			state := s.ctrl.Snapshot()
			customs := len(state.CustomCategories.Expense) + len(state.CustomCategories.Income)

			if !yes {
				fmt.Fprintf(out, "%s This will delete %d transactions and %d custom categories.\n",
					cli.WarningStyle.Render(cli.WarningIcon), len(state.Transactions), customs)

				prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.ConfirmContext(ctx, "Are you sure you want to continue?")
				if errors.Is(err, cli.ErrInputCancelled) || errors.Is(err, cli.ErrInputTerminated) {
					ok = false
				} else if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if !ok {
					fmt.Fprintln(out, cli.SubtitleStyle.Render("Reset cancelled."))
					return nil
				}
			}

			info, err := s.gateway.Checkpoints().AutoCheckpoint(ctx, "reset")
			if err != nil {
				return common.NewUserError("Could not save a checkpoint, nothing was reset", err)
			}

			s.ctrl.Reset(ctx)
			if err := s.saveWarning(); err != nil {
				return err
			}

			fmt.Fprintln(out, cli.FormatSuccess("Data reset to the example entries"))
			if info != nil {
				fmt.Fprintf(out, "  Undo with: finpro checkpoint restore %s\n", info.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
