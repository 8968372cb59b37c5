package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/worker"
)

const cacheCleanupInterval = time.Minute

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.SetupLogger(os.Stdout, "info", "text", log.ComponentWorker).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat, log.ComponentWorker)
	logger.Info("Starting recurring-worker",
		"interval", cfg.RecurringInterval,
		log.FieldBackend, cfg.DataBackend,
		"publishing", cfg.PublishingEnabled())

	converter, err := cli.NewConverter(cfg)
	if err != nil {
		logger.Error("Failed to load exchange rates", log.FieldError, err, "rates_file", cfg.RatesFile)
		os.Exit(1)
	}

	ctx, stop := cli.GracefulShutdown(log.WithContext(context.Background(), logger), logger)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Failed to release backend", log.FieldError, err)
		}
	}()

	processor := services.NewRecurringProcessor(res.Ledger, converter, res.Publisher)
	w := worker.NewRecurringWorker(processor, cli.NewClock(cfg), cfg.RecurringInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	if res.Cache != nil {
		manager := cache.NewManager(res.Cache)
		g.Go(func() error {
			return manager.Run(gctx, cacheCleanupInterval)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Recurring-worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Recurring-worker shutdown complete")
}
