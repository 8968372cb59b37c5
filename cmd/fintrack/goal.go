package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/core"
)

func goalCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Savings goals in base currency",
	}

	var (
		name     string
		target   string
		deadline string
		category string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a savings goal",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			amount, err := core.ParseAmount(target)
			if err != nil {
				return fmt.Errorf("target %q: %w", target, err)
			}
			due, err := core.ParseDate(deadline)
			if err != nil {
				return err
			}
			g, err := a.goals.Add(ctx, core.SavingsGoal{Name: name, Category: category, Target: amount, Deadline: due})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s goal %s: %s by %s\n", cli.SuccessStyle.Render("Added"), g.Name, a.base(g.Target), g.Deadline)
			return nil
		}),
	}
	add.Flags().StringVarP(&name, "name", "n", "", "goal name")
	add.Flags().StringVarP(&target, "target", "t", "", "target amount in base currency")
	add.Flags().StringVar(&deadline, "deadline", "", "deadline YYYY-MM-DD")
	add.Flags().StringVar(&category, "category", "", "optional category")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("target")
	_ = add.MarkFlagRequired("deadline")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add money to a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			amount, err := core.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[1], err)
			}
			g, reached, err := a.goals.Contribute(ctx, args[0], amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %s of %s (%.0f%%)\n", g.Name, a.base(g.Current), a.base(g.Target), g.Progress())
			if reached {
				fmt.Fprintln(a.out, cli.SuccessStyle.Render("Goal reached!"))
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List savings goals by deadline",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			goals, err := a.goals.List(ctx)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No savings goals."))
				return nil
			}

			today := a.clock.Today()
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSAVED\tTARGET\tPROGRESS\tDEADLINE\tID")
			for _, g := range goals {
				left := fmt.Sprintf("%s (%d days)", g.Deadline, g.DaysLeft(today))
				switch {
				case g.Achieved():
					left = g.Deadline.String() + " (achieved)"
				case g.DaysLeft(today) < 0:
					left = g.Deadline.String() + " (overdue)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %.0f%%\t%s\t%s\n",
					g.Name, a.base(g.Current), a.base(g.Target),
					cli.ProgressBar(g.Progress(), 20), g.Progress(),
					left, g.ID)
			}
			return w.Flush()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			if err := a.goals.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		}),
	})

	return cmd
}
