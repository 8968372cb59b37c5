package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/core"
)

func budgetCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Monthly category budgets in base currency",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set the monthly limit of a category",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			limit, err := core.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("limit %q: %w", args[1], err)
			}
			if err := a.budgets.Set(ctx, args[0], limit); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Budget for %s set to %s\n", args[0], a.converter.Format(limit, a.converter.Base()))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <category>",
		Short: "Remove the budget of a category",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			if err := a.budgets.Remove(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Budget for %s removed\n", args[0])
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show spending against every budget this month",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			today := a.clock.Today()
			statuses, err := a.budgets.Status(ctx, today)
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No budgets set. Use 'fintrack budget set' to create one."))
				return nil
			}

			fmt.Fprintln(a.out, cli.TitleStyle.Render("Budgets for "+today.MonthKey()))
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSPENT\tLIMIT\tREMAINING\tPROGRESS")
			for _, s := range statuses {
				style := cli.LevelStyle(s.Level)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\n",
					s.Category,
					a.base(s.Spent),
					a.base(s.Limit),
					a.base(s.Remaining),
					style.Render(cli.ProgressBar(s.BarPercent(), 20)),
					style.Render(fmt.Sprintf("%.0f%%", s.Percent)))
			}
			return w.Flush()
		}),
	})

	return cmd
}
