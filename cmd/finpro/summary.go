package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/cli"
)

func summaryCmd() *cobra.Command {
	var (
		date  string
		width int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show balance, weekly spending and category breakdown",
		Long: `Show the balance with income and expense totals, the spending of the
seven days ending on --date, and the expense total of every category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			today := s.ctrl.Now()
			if !day.IsZero() {
				today = day.Add(12 * time.Hour)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(s.renderer.Text().AppName))
			fmt.Fprintln(out, s.renderer.Totals(s.ctrl.Totals()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.renderer.WeeklyChart(s.ctrl.DailyExpenseSeries(today), width))
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.renderer.Breakdown(s.ctrl.CategoryBreakdown(), width))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "last day of the chart as YYYY-MM-DD (default: today)")
	cmd.Flags().IntVarP(&width, "width", "w", cli.DefaultChartWidth, "width of the bars")

	return cmd
}
