package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/currency"
	"fintrack/internal/services"
)

func TestCreateBackend_Memory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seed := `[{"id":1,"name":"Trip","target":500,"currentAmount":100,"deadline":"2024-12-31"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savingsGoals.json"), []byte(seed), 0o644))

	res, err := NewFactory(nil).CreateBackend(ctx, Config{
		Type:          MemoryBackend,
		DataDirectory: dir,
		CacheSize:     4,
		CacheTTL:      time.Minute,
	})
	require.NoError(t, err)
	defer res.Cleanup()

	assert.NotNil(t, res.Cache)
	assert.Nil(t, res.Publisher)

	goals, err := res.Ledger.SavingsGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Trip", goals[0].Name)
}

func TestCreateBackend_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fintrack.db")

	res, err := NewFactory(nil).CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	assert.Nil(t, res.Cache, "cache disabled without a size")

	require.NoError(t, res.Ledger.SaveBudgets(ctx, core.Budgets{"food": 1000}))
	require.NoError(t, res.Cleanup())

	reopened, err := NewFactory(nil).CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	defer reopened.Cleanup()

	budgets, err := reopened.Ledger.Budgets(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Budgets{"food": 1000}, budgets)
}

func TestCreateBackend_Invalid(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"})
	assert.EqualError(t, err, `invalid backend type "sheets": must be one of [sqlite memory]`)

	_, err = NewFactory(nil).CreateBackend(context.Background(), Config{Type: SQLiteBackend})
	assert.Error(t, err)
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "./data/x.db",
		CacheSize:    8,
		CacheTTL:     time.Minute,
		AMQPURL:      "amqp://localhost",
	})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, 8, cfg.CacheSize)
	assert.Equal(t, "amqp://localhost", cfg.AMQPURL)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.ErrorContains(t, err, "must be one of [sqlite memory]")

	assert.Equal(t, []string{"sqlite", "memory"}, GetBackendTypeStrings())
}

func TestCreateBackend_SharedSQLiteWithCache(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "fintrack.db"),
		CacheSize:    16,
		CacheTTL:     5 * time.Minute,
	}

	workerBackend, err := NewFactory(nil).CreateBackend(ctx, cfg)
	require.NoError(t, err)
	defer workerBackend.Cleanup()
	cliBackend, err := NewFactory(nil).CreateBackend(ctx, cfg)
	require.NoError(t, err)
	defer cliBackend.Cleanup()

	conv := currency.Default()
	require.NoError(t, workerBackend.Ledger.SaveRecurringExpenses(ctx, []core.RecurringExpense{{
		ID: "r1", Description: "rent", Category: "bills", Amount: 1000, Currency: "INR",
		Frequency: core.Weekly, StartDate: core.NewDate(2024, 5, 20), Active: true,
	}}))

	processor := services.NewRecurringProcessor(workerBackend.Ledger, conv, nil)
	res, err := processor.ProcessDueExpenses(ctx, core.NewDate(2024, 6, 1))
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	_, err = services.NewExpenseService(cliBackend.Ledger, conv).Create(ctx, core.Expense{
		Description: "coffee", Category: "food", Amount: 3, Currency: "INR", Date: core.NewDate(2024, 6, 2),
	})
	require.NoError(t, err)

	res, err = processor.ProcessDueExpenses(ctx, core.NewDate(2024, 6, 8))
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	fresh, err := NewFactory(nil).CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: cfg.SQLiteDBPath})
	require.NoError(t, err)
	defer fresh.Cleanup()

	expenses, err := fresh.Ledger.Expenses(ctx)
	require.NoError(t, err)
	var descriptions []string
	for _, e := range expenses {
		descriptions = append(descriptions, e.Description)
	}
	assert.ElementsMatch(t, []string{"rent (Auto)", "coffee", "rent (Auto)"}, descriptions)
}
