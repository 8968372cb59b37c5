package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/currency"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// app bundles everything a command needs for one invocation.
type app struct {
	cfg       *config.Config
	out       io.Writer
	clock     core.Clock
	converter *currency.Converter
	backend   *backend.BackendResult

	expenses   *services.ExpenseService
	recurring  *services.RecurringService
	processor  *services.RecurringProcessor
	budgets    *services.BudgetService
	goals      *services.GoalService
	summary    *services.SummaryService
	categories *services.CategoryService
}

func newApp(ctx context.Context, out io.Writer, flags *rootFlags) (*app, error) {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	logger := cli.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat, log.ComponentCLI)

	converter, err := cli.NewConverter(cfg)
	if err != nil {
		return nil, fmt.Errorf("load exchange rates: %w", err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	return &app{
		cfg:        cfg,
		out:        out,
		clock:      cli.NewClock(cfg),
		converter:  converter,
		backend:    res,
		expenses:   services.NewExpenseService(res.Ledger, converter),
		recurring:  services.NewRecurringService(res.Ledger),
		processor:  services.NewRecurringProcessor(res.Ledger, converter, res.Publisher),
		budgets:    services.NewBudgetService(res.Ledger),
		goals:      services.NewGoalService(res.Ledger),
		summary:    services.NewSummaryService(res.Ledger, converter, cfg.DisplayCurrency),
		categories: services.NewCategoryService(res.Ledger),
	}, nil
}

func (a *app) close() {
	if a.backend.Cleanup == nil {
		return
	}
	if err := a.backend.Cleanup(); err != nil {
		slog.Error("Failed to release backend", log.FieldError, err)
	}
}

// base renders an amount in base currency in the display currency.
func (a *app) base(amount float64) string {
	return a.summary.InDisplay(amount)
}

// withApp builds the app for a command and releases it afterwards.
func withApp(flags *rootFlags, fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cmd.OutOrStdout(), flags)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(ctx, a, args)
	}
}

// parseDateFlag parses a YYYY-MM-DD flag, defaulting to today when empty.
func (a *app) parseDateFlag(value string) (core.Date, error) {
	if value == "" {
		return a.clock.Today(), nil
	}
	d, err := core.ParseDate(value)
	if err != nil {
		return core.Date{}, err
	}
	return d, nil
}
