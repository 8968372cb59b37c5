package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

type rootFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker",
		Long: `fintrack records expenses in any currency, materializes recurring
expenses on schedule, and reports budgets, savings goals and spending
summaries in your display currency.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (text, json); overrides LOG_FORMAT")

	root.AddCommand(expenseCmd(flags))
	root.AddCommand(recurringCmd(flags))
	root.AddCommand(processCmd(flags))
	root.AddCommand(budgetCmd(flags))
	root.AddCommand(goalCmd(flags))
	root.AddCommand(summaryCmd(flags))
	root.AddCommand(categoryCmd(flags))
	root.AddCommand(convertCmd(flags))
	root.AddCommand(ratesCmd(flags))
	root.AddCommand(versionCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fintrack %s\n", version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
