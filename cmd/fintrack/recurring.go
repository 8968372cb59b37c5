package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

func recurringCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring expenses",
		Long: `Recurring expenses are templates that produce one expense per period.
Supported frequencies: weekly, monthly, quarterly, yearly. Month steps clamp
to the end of shorter months (Jan 31 is followed by Feb 29 in a leap year).`,
	}

	cmd.AddCommand(recurringAddCmd(flags))
	cmd.AddCommand(recurringListCmd(flags))
	cmd.AddCommand(recurringToggleCmd(flags, "pause", false))
	cmd.AddCommand(recurringToggleCmd(flags, "resume", true))
	cmd.AddCommand(recurringDeleteCmd(flags))

	return cmd
}

func recurringAddCmd(flags *rootFlags) *cobra.Command {
	var (
		f         expenseFlags
		frequency string
		start     string
		end       string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring expense",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			f.date = start
			in, err := f.build(a)
			if err != nil {
				return err
			}
			def := core.RecurringExpense{
				Description: in.Description,
				Category:    in.Category,
				Amount:      in.Amount,
				Currency:    in.Currency,
				Frequency:   core.Frequency(frequency),
				StartDate:   in.Date,
			}
			if end != "" {
				if def.EndDate, err = core.ParseDate(end); err != nil {
					return err
				}
			}

			def, err = a.recurring.Add(ctx, def)
			if err != nil {
				return err
			}
			next, _ := services.Scheduler{}.Next(def)
			fmt.Fprintf(a.out, "%s %s %s %s, first occurrence %s\n",
				cli.SuccessStyle.Render("Added"),
				def.Frequency, def.Description,
				a.converter.Format(def.Amount, def.Currency),
				next)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount per occurrence")
	cmd.Flags().StringVarP(&f.currency, "currency", "c", "", "currency code (default BASE_CURRENCY)")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(core.Monthly), "weekly, monthly, quarterly or yearly")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "optional last date YYYY-MM-DD, inclusive")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func recurringListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring expenses with their next occurrence",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			scheduled, err := a.recurring.List(ctx)
			if err != nil {
				return err
			}
			if len(scheduled) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No recurring expenses."))
				return nil
			}

			today := a.clock.Today()
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NEXT\tDESCRIPTION\tFREQUENCY\tAMOUNT\tSTATUS\tID")
			for _, s := range scheduled {
				next := "-"
				if s.HasNext {
					next = s.Next.String()
				}
				status := "active"
				switch {
				case !s.Definition.Active:
					status = "paused"
				case !s.HasNext:
					status = "ended"
				case !s.Next.After(today):
					status = "due"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					next, s.Definition.Description, s.Definition.Frequency,
					a.converter.Format(s.Definition.Amount, s.Definition.Currency),
					status, s.Definition.ID)
			}
			return w.Flush()
		}),
	}
}

func recurringToggleCmd(flags *rootFlags, use string, active bool) *cobra.Command {
	short := "Pause a recurring expense"
	if active {
		short = "Resume a recurring expense"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			def, err := a.recurring.SetActive(ctx, args[0], active)
			if err != nil {
				return err
			}
			state := "paused"
			if def.Active {
				state = "active"
			}
			fmt.Fprintf(a.out, "%s is now %s\n", def.Description, state)
			return nil
		}),
	}
}

func recurringDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recurring expense; expenses it generated are kept",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			if err := a.recurring.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		}),
	}
}

func processCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Create expenses for recurring definitions that are due today",
		Long: `Run one recurrence pass. Every due definition produces exactly one
expense dated today, even when several periods were missed; run again on
later days to catch up.`,
		Args: cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			result, err := a.processor.ProcessDueExpenses(ctx, a.clock.Today())
			if err != nil {
				return err
			}
			if result.Count == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No recurring expenses due."))
				return nil
			}
			fmt.Fprintln(a.out, cli.TitleStyle.Render(fmt.Sprintf("Created %d recurring expense(s)", result.Count)))
			for _, e := range result.Generated {
				fmt.Fprintf(a.out, "  %s  %s  %s\n", e.Date, e.Description, a.converter.Format(e.Amount, e.Currency))
			}
			return nil
		}),
	}
}
