package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"fintrack/internal/core"
)

// Ledger reads and writes the typed collections kept in a Store. Legacy
// expense records are resolved to their BaseAmount tag here, once, on load.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

func loadJSON[T any](ctx context.Context, s Store, key string, out *T) error {
	data, ok, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func saveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Save(ctx, key, data)
}

func (l *Ledger) Expenses(ctx context.Context) ([]core.Expense, error) {
	var records []expenseRecord
	if err := loadJSON(ctx, l.store, KeyExpenses, &records); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	out := make([]core.Expense, 0, len(records))
	for _, r := range records {
		out = append(out, r.toCore())
	}
	return out, nil
}

func (l *Ledger) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	records := make([]expenseRecord, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, expenseToRecord(e))
	}
	if err := saveJSON(ctx, l.store, KeyExpenses, records); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

func (l *Ledger) RecurringExpenses(ctx context.Context) ([]core.RecurringExpense, error) {
	var records []recurringRecord
	if err := loadJSON(ctx, l.store, KeyRecurringExpenses, &records); err != nil {
		return nil, fmt.Errorf("load recurring expenses: %w", err)
	}
	out := make([]core.RecurringExpense, 0, len(records))
	for _, r := range records {
		out = append(out, r.toCore())
	}
	return out, nil
}

func (l *Ledger) SaveRecurringExpenses(ctx context.Context, defs []core.RecurringExpense) error {
	records := make([]recurringRecord, 0, len(defs))
	for _, d := range defs {
		records = append(records, recurringToRecord(d))
	}
	if err := saveJSON(ctx, l.store, KeyRecurringExpenses, records); err != nil {
		return fmt.Errorf("save recurring expenses: %w", err)
	}
	return nil
}

func (l *Ledger) Budgets(ctx context.Context) (core.Budgets, error) {
	budgets := core.Budgets{}
	if err := loadJSON(ctx, l.store, KeyBudgets, &budgets); err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	return budgets, nil
}

func (l *Ledger) SaveBudgets(ctx context.Context, budgets core.Budgets) error {
	if budgets == nil {
		budgets = core.Budgets{}
	}
	if err := saveJSON(ctx, l.store, KeyBudgets, budgets); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}
	return nil
}

func (l *Ledger) SavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	var records []goalRecord
	if err := loadJSON(ctx, l.store, KeySavingsGoals, &records); err != nil {
		return nil, fmt.Errorf("load savings goals: %w", err)
	}
	out := make([]core.SavingsGoal, 0, len(records))
	for _, r := range records {
		out = append(out, r.toCore())
	}
	return out, nil
}

func (l *Ledger) SaveSavingsGoals(ctx context.Context, goals []core.SavingsGoal) error {
	records := make([]goalRecord, 0, len(goals))
	for _, g := range goals {
		records = append(records, goalToRecord(g))
	}
	if err := saveJSON(ctx, l.store, KeySavingsGoals, records); err != nil {
		return fmt.Errorf("save savings goals: %w", err)
	}
	return nil
}

func (l *Ledger) CustomCategories(ctx context.Context) ([]core.Category, error) {
	var records []categoryRecord
	if err := loadJSON(ctx, l.store, KeyCustomCategories, &records); err != nil {
		return nil, fmt.Errorf("load custom categories: %w", err)
	}
	out := make([]core.Category, 0, len(records))
	for _, r := range records {
		out = append(out, r.toCore())
	}
	return out, nil
}

func (l *Ledger) SaveCustomCategories(ctx context.Context, categories []core.Category) error {
	records := make([]categoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, categoryToRecord(c))
	}
	if err := saveJSON(ctx, l.store, KeyCustomCategories, records); err != nil {
		return fmt.Errorf("save custom categories: %w", err)
	}
	return nil
}
