// Package storage persists the tracker's collections as named JSON values.
package storage

import "context"

// Collection keys.
const (
	KeyExpenses          = "expenses"
	KeyRecurringExpenses = "recurringExpenses"
	KeyBudgets           = "budgets"
	KeySavingsGoals      = "savingsGoals"
	KeyCustomCategories  = "customCategories"
)

// Store gets and sets serialized values by key. A key that was never saved
// loads as (nil, false, nil).
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Revisioned is implemented by stores that other processes may write to.
// A key's revision changes on every save, so a reader can tell whether a
// value it holds is still current.
type Revisioned interface {
	Revision(ctx context.Context, key string) (int64, bool, error)
	LoadRevision(ctx context.Context, key string) ([]byte, int64, bool, error)
}
