package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
)

func categoryCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Built-in and custom expense categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(ctx context.Context, a *app, _ []string) error {
			all, err := a.categories.All(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tICON\tKIND")
			for _, c := range all {
				kind := "built-in"
				if c.Custom {
					kind = "custom"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Icon, kind)
			}
			return w.Flush()
		}),
	})

	var icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom category",
		Long: `Add a custom category. Its ID is the name lower-cased with everything
but letters and digits removed, and is what expenses and budgets refer to.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			c, err := a.categories.Add(ctx, args[0], icon)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s category %s %s (%s)\n", cli.SuccessStyle.Render("Added"), c.Icon, c.Name, c.ID)
			return nil
		}),
	}
	add.Flags().StringVar(&icon, "icon", "", "icon shown next to the name")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom category; existing expenses keep it",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, a *app, args []string) error {
			if err := a.categories.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted category %s\n", args[0])
			return nil
		}),
	})

	return cmd
}
