package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store    storage.Store
		cleanups []CleanupFunc
	)

	switch config.Type {
	case SQLiteBackend:
		sqliteStore, err := storage.NewSQLiteStore(ctx, config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		store = sqliteStore
		cleanups = append(cleanups, sqliteStore.Close)
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	case MemoryBackend:
		memStore, err := f.createMemoryStore(config)
		if err != nil {
			return nil, err
		}
		store = memStore

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	result := &BackendResult{}

	if config.CacheSize > 0 && config.CacheTTL > 0 {
		lru := cache.NewLRUCache[storage.Entry](config.CacheSize, config.CacheTTL)
		store = storage.NewCachedStore(store, lru)
		result.Cache = lru
		f.logger.Debug("Enabled store cache", "size", config.CacheSize, "ttl", config.CacheTTL)
	}

	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without publishing", "error", err)
		} else {
			result.Publisher = client
			cleanups = append(cleanups, client.Close)
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	result.Store = store
	result.Ledger = storage.NewLedger(store)
	result.Cleanup = func() error {
		var errs []error
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	return result, nil
}

func (f *DefaultFactory) createMemoryStore(config Config) (*storage.MemoryStore, error) {
	if config.DataDirectory == "" {
		f.logger.Info("Initialized memory backend")
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.NewMemoryStoreFromDir(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory store: %w", err)
	}
	f.logger.Info("Initialized memory backend", "data_dir", config.DataDirectory)
	return store, nil
}
