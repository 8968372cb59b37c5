package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// BudgetService manages monthly per-category limits in base currency.
type BudgetService struct {
	ledger *storage.Ledger
}

func NewBudgetService(ledger *storage.Ledger) *BudgetService {
	return &BudgetService{ledger: ledger}
}

// Set creates or replaces the monthly limit of a category.
func (s *BudgetService) Set(ctx context.Context, category string, limit float64) error {
	category = core.CategoryKey(category)
	if category == "" {
		return core.ErrEmptyCategory
	}
	if !(limit > 0) {
		return core.ErrInvalidBudget
	}

	budgets, err := s.ledger.Budgets(ctx)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}
	for key := range budgets {
		if core.CategoryKey(key) == category {
			delete(budgets, key)
		}
	}
	budgets[category] = limit
	if err := s.ledger.SaveBudgets(ctx, budgets); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}

	slog.InfoContext(ctx, "Budget set", log.FieldCategory, category, "limit", limit)
	return nil
}

// Remove deletes the limit of a category.
func (s *BudgetService) Remove(ctx context.Context, category string) error {
	budgets, err := s.ledger.Budgets(ctx)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}
	category = core.CategoryKey(category)
	removed := false
	for key := range budgets {
		if core.CategoryKey(key) == category {
			delete(budgets, key)
			removed = true
		}
	}
	if !removed {
		return fmt.Errorf("budget %s: %w", category, ErrNotFound)
	}
	if err := s.ledger.SaveBudgets(ctx, budgets); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}

	slog.InfoContext(ctx, "Budget removed", log.FieldCategory, category)
	return nil
}

// Status reports spending against every budget for the calendar month
// containing today, ordered by category.
func (s *BudgetService) Status(ctx context.Context, today core.Date) ([]core.BudgetStatus, error) {
	budgets, err := s.ledger.Budgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	spent, err := s.monthSpent(ctx, today)
	if err != nil {
		return nil, err
	}

	out := make([]core.BudgetStatus, 0, len(budgets))
	for category, limit := range budgets {
		out = append(out, core.NewBudgetStatus(category, limit, spent[core.CategoryKey(category)]))
	}
	slices.SortFunc(out, func(a, b core.BudgetStatus) int { return strings.Compare(a.Category, b.Category) })
	return out, nil
}

// Check returns the status the category would have after spending
// amountInBase more this month. The boolean is false when the category has
// no budget.
func (s *BudgetService) Check(ctx context.Context, category string, amountInBase float64, today core.Date) (core.BudgetStatus, bool, error) {
	budgets, err := s.ledger.Budgets(ctx)
	if err != nil {
		return core.BudgetStatus{}, false, fmt.Errorf("load budgets: %w", err)
	}
	name, limit, ok := lookupBudget(budgets, category)
	if !ok {
		return core.BudgetStatus{}, false, nil
	}
	spent, err := s.monthSpent(ctx, today)
	if err != nil {
		return core.BudgetStatus{}, false, err
	}
	return core.NewBudgetStatus(name, limit, core.Sum(spent[core.CategoryKey(category)], amountInBase)), true, nil
}

// lookupBudget finds the budget for category regardless of how either was
// capitalised.
func lookupBudget(budgets core.Budgets, category string) (string, float64, bool) {
	key := core.CategoryKey(category)
	if limit, ok := budgets[key]; ok {
		return key, limit, true
	}
	for name, limit := range budgets {
		if core.CategoryKey(name) == key {
			return name, limit, true
		}
	}
	return "", 0, false
}

func (s *BudgetService) monthSpent(ctx context.Context, today core.Date) (map[string]float64, error) {
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	month := today.MonthKey()
	acc := make(map[string]*core.Accumulator)
	for _, e := range expenses {
		if e.Date.MonthKey() != month {
			continue
		}
		key := core.CategoryKey(e.Category)
		a, ok := acc[key]
		if !ok {
			a = &core.Accumulator{}
			acc[key] = a
		}
		a.Add(e.AmountInBase())
	}

	spent := make(map[string]float64, len(acc))
	for category, a := range acc {
		spent[category] = a.Total()
	}
	return spent, nil
}
