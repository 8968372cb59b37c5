package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

type expenseFlags struct {
	description string
	amount      string
	currency    string
	category    string
	date        string
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "what the money was spent on")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, dot or comma decimal separator")
	cmd.Flags().StringVarP(&f.currency, "currency", "c", "", "currency code (default BASE_CURRENCY)")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.date, "date", "", "date YYYY-MM-DD (default today)")
}

func (f *expenseFlags) build(a *app) (core.Expense, error) {
	amount, err := core.ParseAmount(f.amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", f.amount, err)
	}
	date, err := a.parseDateFlag(f.date)
	if err != nil {
		return core.Expense{}, err
	}
	code := f.currency
	if code == "" {
		code = a.cfg.BaseCurrency
	}
	return core.Expense{
		Description: f.description,
		Category:    f.category,
		Amount:      amount,
		Currency:    code,
		Date:        date,
	}, nil
}

func expenseCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Record and manage expenses",
	}

	cmd.AddCommand(expenseAddCmd(flags))
	cmd.AddCommand(expenseEditCmd(flags))
	cmd.AddCommand(expenseListCmd(flags))
	cmd.AddCommand(expenseDeleteCmd(flags))

	return cmd
}

func expenseAddCmd(flags *rootFlags) *cobra.Command {
	f := &expenseFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record an expense. The amount is converted to the base currency at
today's rate and that converted amount is kept even if rates change later.`,
		Args: cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			in, err := f.build(a)
			if err != nil {
				return err
			}
			status, hasBudget, err := a.budgets.Check(ctx, in.Category, a.converter.ToBase(in.Amount, in.Currency), a.clock.Today())
			if err != nil {
				return err
			}
			e, err := a.expenses.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s %s (%s)\n",
				cli.SuccessStyle.Render("Added"),
				e.Description,
				a.converter.Format(e.Amount, e.Currency),
				a.base(e.AmountInBase()))

			if hasBudget {
				printBudgetAlert(a, status)
			}
			return nil
		}),
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func expenseEditCmd(flags *rootFlags) *cobra.Command {
	f := &expenseFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace an expense, converting it again at today's rate",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			in, err := f.build(a)
			if err != nil {
				return err
			}
			in.ID = args[0]
			e, err := a.expenses.Update(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s %s\n",
				cli.SuccessStyle.Render("Updated"),
				e.ID,
				a.converter.Format(e.Amount, e.Currency))
			return nil
		}),
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func expenseListCmd(flags *rootFlags) *cobra.Command {
	var (
		filter services.ExpenseFilter
		sortBy string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first by default",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			sort, err := services.ParseExpenseSort(sortBy)
			if err != nil {
				return err
			}
			filter.Sort = sort
			expenses, err := a.expenses.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Fprintln(a.out, cli.SubtleStyle.Render("No expenses found."))
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT\tIN "+a.summary.DisplayCurrency()+"\tID")
			for _, e := range expenses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Date, e.Description, e.Category,
					a.converter.Format(e.Amount, e.Currency),
					a.base(e.AmountInBase()),
					e.ID)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVar(&filter.Month, "month", "", "only this month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "only expenses whose description or category contains this text")
	cmd.Flags().StringVar(&sortBy, "sort", string(services.SortDateDesc), fmt.Sprintf("order, one of %v", services.ExpenseSorts))
	return cmd
}

func expenseDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more expenses",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			if len(args) == 1 {
				if err := a.expenses.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Deleted %s\n", args[0])
				return nil
			}
			n, err := a.expenses.DeleteMany(ctx, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %d of %d expenses\n", n, len(args))
			return nil
		}),
	}
}

// printBudgetAlert reports a budget in the current month that the new
// expense pushes into the warning or exceeded level.
func printBudgetAlert(a *app, status core.BudgetStatus) {
	switch status.Level {
	case core.BudgetExceeded:
		fmt.Fprintln(a.out, cli.ErrorStyle.Render(fmt.Sprintf(
			"Budget exceeded for %s: %s over the %s limit",
			strings.ToLower(status.Category), a.base(status.Overage()), a.base(status.Limit))))
	case core.BudgetWarning:
		fmt.Fprintln(a.out, cli.WarningStyle.Render(fmt.Sprintf(
			"%.0f%% of the %s budget used, %s left",
			status.Percent, status.Category, a.base(status.Remaining))))
	}
}
