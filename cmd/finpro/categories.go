package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List and create categories",
		Long:  `List the built-in and custom categories, or create a custom one.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var income bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories of one type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			t := transactionType(income)
			title := s.renderer.Text().Expense
			if income {
				title = s.renderer.Text().Income
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.BoldStyle.Render(title))
			fmt.Fprintln(out, s.renderer.Categories(s.ctrl.EffectiveCategories(t)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&income, "income", "i", false, "list income categories")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		income bool
		icon   string
		color  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom category",
		Long: `Create a custom category. Unknown icons fall back to the tag icon and a
missing color is picked at random from the palette.`,
		Example: `  finpro categories add Подписки --icon smartphone
  finpro categories add Кэшбэк --income --color "#22c55e"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			s, err := openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer s.Close()

			created, err := s.ctrl.AddCategory(cmd.Context(), transactionType(income), model.Category{
				Name:   name,
				IconID: model.ParseIconID(icon),
				Color:  strings.TrimSpace(color),
			})
			if err != nil {
				return common.NewUserError("Could not create the category", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Created "+s.renderer.Categories([]model.Category{created})))
			return s.saveWarning()
		},
	}

	cmd.Flags().BoolVarP(&income, "income", "i", false, "create an income category")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name, e.g. car, home, gift")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #6366f1")

	return cmd
}
