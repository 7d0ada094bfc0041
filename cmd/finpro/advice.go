package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/cli"
)

func adviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Ask the AI assistant about your recent spending",
		Long: `Send the most recent transactions to the configured AI provider and print
a short piece of advice. Set API_KEY (or llm.api_key) to enable it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Advice request", "Run 'finpro advice' again whenever you like.")
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			ctx = handler.HandleInterrupts(ctx)

			s, err := openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer s.Close()

			text := s.renderer.Text()
			fmt.Fprintln(out, cli.SubtleStyle.Render(text.Thinking))

			advice := s.ctrl.RequestAdvice(ctx)
			if handler.WasInterrupted() {
				return nil
			}

			fmt.Fprintln(out, cli.RenderBox(cli.RobotIcon+" "+text.Insights, advice))
			return nil
		},
	}
}
