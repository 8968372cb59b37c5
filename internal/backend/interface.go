package backend

import (
	"context"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store, its typed ledger and optional extras.
type BackendResult struct {
	Store  storage.Store
	Ledger *storage.Ledger

	// Cache is the store cache, nil when caching is disabled. It should be
	// registered with a cache.Manager by long-running processes.
	Cache cache.Cleaner

	// Publisher is nil when AMQP publishing is disabled or unavailable.
	Publisher services.Publisher

	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory backend specific: optional directory of <key>.json seed files
	DataDirectory string

	// Store cache, disabled when CacheSize or CacheTTL is zero
	CacheSize int
	CacheTTL  time.Duration

	// AMQP publishing, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
