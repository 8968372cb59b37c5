package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/core"
)

func convertCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <amount> <from> [to]",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount through the base currency. The target defaults to
DISPLAY_CURRENCY. Currencies missing from the rate table convert 1:1.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: withApp(flags, func(_ context.Context, a *app, args []string) error {
			amount, err := core.ParseAmount(args[0])
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], err)
			}
			from := strings.ToUpper(args[1])
			to := a.summary.DisplayCurrency()
			if len(args) == 3 {
				to = strings.ToUpper(args[2])
			}
			for _, code := range []string{from, to} {
				if !a.converter.Known(code) {
					fmt.Fprintln(a.out, cli.WarningStyle.Render(fmt.Sprintf("No rate for %s, converting 1:1", code)))
				}
			}
			converted := a.converter.Convert(amount, from, to)
			fmt.Fprintf(a.out, "%s = %s\n", a.converter.Format(amount, from), a.converter.Format(converted, to))
			return nil
		}),
	}
}

func ratesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the exchange rate table",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(_ context.Context, a *app, _ []string) error {
			table := a.converter.Table()
			fmt.Fprintln(a.out, cli.TitleStyle.Render("Rates in "+table.Base()))
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tRATE\tEXAMPLE")
			for _, code := range table.Codes() {
				rate, _ := table.Rate(code)
				fmt.Fprintf(w, "%s\t%g\t%s\n", code, rate, a.converter.Format(1234.5, code))
			}
			return w.Flush()
		}),
	}
}
