// Package cli provides common process initialization utilities shared by
// cmd/fintrack and cmd/recurring-worker.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/currency"
	"fintrack/internal/log"
)

// SetupLogger initializes structured logging for a component and sets it
// as the default logger. Unknown levels fall back to info.
func SetupLogger(out io.Writer, level, format, component string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	logger := log.New(log.Config{
		Level:     lvl,
		Format:    format,
		Component: component,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConverter builds the currency converter from RATES_FILE, or from the
// built-in table when no file is configured.
func NewConverter(cfg *config.Config) (*currency.Converter, error) {
	table := currency.DefaultTable()
	if cfg.RatesFile != "" {
		loaded, err := currency.LoadTable(cfg.RatesFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	if table.Base() != cfg.BaseCurrency {
		return nil, fmt.Errorf("base currency %s does not match rate table base %s", cfg.BaseCurrency, table.Base())
	}
	return currency.NewConverter(table, nil), nil
}

// NewClock returns the system clock in the configured timezone.
func NewClock(cfg *config.Config) core.Clock {
	return core.SystemClock{Location: cfg.Location()}
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM. The
// returned stop function releases the signal handler.
func GracefulShutdown(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
