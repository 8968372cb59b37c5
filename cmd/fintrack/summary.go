package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/core"
)

func summaryCmd(flags *rootFlags) *cobra.Command {
	var timeframe string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Spending totals, trends and insights",
		Long: `Show totals for this month, this week and all time, followed by an
analysis of the chosen timeframe: total, average per day, top category,
the spending trend and a comparison of the last six months.`,
		Args: cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			tf, err := core.ParseTimeframe(timeframe)
			if err != nil {
				return err
			}
			today := a.clock.Today()

			s, err := a.summary.Summarize(ctx, today)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, cli.TitleStyle.Render(fmt.Sprintf("Summary as of %s (%s)", s.AsOf, a.summary.DisplayCurrency())))
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "This month\t%s\n", a.base(s.Month))
			fmt.Fprintf(w, "This week\t%s\n", a.base(s.Week))
			fmt.Fprintf(w, "All time\t%s\n", a.base(s.AllTime))
			fmt.Fprintf(w, "Expenses\t%d\n", s.Count)
			if err := w.Flush(); err != nil {
				return err
			}

			if len(s.ByCategory) > 0 {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, cli.BoldStyle.Render("By category this month"))
				if err := printCategoryShares(ctx, a, s.ByCategory, s.Month); err != nil {
					return err
				}
			}

			analytics, err := a.summary.Analytics(ctx, tf, today)
			if err != nil {
				return err
			}
			return printAnalytics(ctx, a, analytics)
		}),
	}
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", string(core.CurrentMonth), fmt.Sprintf("analysis window, one of %v", core.Timeframes))
	return cmd
}

func printCategoryShares(ctx context.Context, a *app, categories []core.CategoryAmount, total float64) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, c := range categories {
		name, err := a.categories.Name(ctx, c.Name)
		if err != nil {
			return err
		}
		share := 0.0
		if total > 0 {
			share = c.Amount / total * 100
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\n", name, a.base(c.Amount), share)
	}
	return w.Flush()
}

func printAnalytics(ctx context.Context, a *app, an core.Analytics) error {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, cli.TitleStyle.Render(fmt.Sprintf("Insights for %s (%s to %s)", an.Timeframe, an.Start, an.End)))
	if an.Count == 0 {
		fmt.Fprintln(a.out, cli.SubtleStyle.Render("No expenses found for the selected timeframe."))
	} else {
		top, err := a.categories.Name(ctx, an.Top.Name)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Total spending\t%s\n", a.base(an.Total))
		fmt.Fprintf(w, "Average per day\t%s\n", a.base(an.AveragePerDay))
		fmt.Fprintf(w, "Top category\t%s (%s)\n", top, a.base(an.Top.Amount))
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, cli.BoldStyle.Render("Trend"))
		if err := printPeriods(a, an.Trend); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, cli.BoldStyle.Render("Last six months"))
	return printPeriods(a, an.Comparison)
}

func printPeriods(a *app, periods []core.PeriodAmount) error {
	peak := 0.0
	for _, p := range periods {
		peak = max(peak, p.Amount)
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range periods {
		percent := 0.0
		if peak > 0 {
			percent = p.Amount / peak * 100
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Label, a.base(p.Amount), cli.ProgressBar(percent, 20))
	}
	return w.Flush()
}
