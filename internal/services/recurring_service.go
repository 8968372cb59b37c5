package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// ScheduledRecurring is a definition with its computed next occurrence.
type ScheduledRecurring struct {
	Definition core.RecurringExpense
	Next       core.Date
	HasNext    bool
}

// RecurringService manages recurring expense definitions.
type RecurringService struct {
	ledger    *storage.Ledger
	scheduler Scheduler
	newID     func() string
	now       func() time.Time
}

func NewRecurringService(ledger *storage.Ledger) *RecurringService {
	return &RecurringService{
		ledger: ledger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Add stores a new active definition. Its first occurrence is one period
// after the start date.
func (s *RecurringService) Add(ctx context.Context, def core.RecurringExpense) (core.RecurringExpense, error) {
	def.Currency = strings.ToUpper(strings.TrimSpace(def.Currency))
	def.Description = strings.TrimSpace(def.Description)
	def.Category = core.CategoryKey(def.Category)
	if err := def.Validate(); err != nil {
		return core.RecurringExpense{}, fmt.Errorf("validate recurring expense: %w", err)
	}

	def.ID = s.newID()
	def.Active = true
	def.LastProcessed = core.Date{}
	def.CreatedAt = s.now()

	defs, err := s.ledger.RecurringExpenses(ctx)
	if err != nil {
		return core.RecurringExpense{}, fmt.Errorf("load recurring expenses: %w", err)
	}
	if err := s.ledger.SaveRecurringExpenses(ctx, append(defs, def)); err != nil {
		return core.RecurringExpense{}, fmt.Errorf("save recurring expense: %w", err)
	}

	slog.InfoContext(ctx, "Recurring expense added",
		log.FieldRecurringID, def.ID,
		log.FieldDescription, def.Description,
		log.FieldFrequency, def.Frequency,
		log.FieldAmount, def.Amount,
		log.FieldCurrency, def.Currency)

	return def, nil
}

// List returns every definition with its next occurrence, soonest first.
// Definitions without a next occurrence come last.
func (s *RecurringService) List(ctx context.Context) ([]ScheduledRecurring, error) {
	defs, err := s.ledger.RecurringExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recurring expenses: %w", err)
	}

	out := make([]ScheduledRecurring, 0, len(defs))
	for _, def := range defs {
		next, ok := s.scheduler.Next(def)
		out = append(out, ScheduledRecurring{Definition: def, Next: next, HasNext: ok})
	}
	slices.SortStableFunc(out, func(a, b ScheduledRecurring) int {
		switch {
		case a.HasNext && !b.HasNext:
			return -1
		case !a.HasNext && b.HasNext:
			return 1
		default:
			return a.Next.Compare(b.Next.Time)
		}
	})
	return out, nil
}

// SetActive pauses or resumes a definition.
func (s *RecurringService) SetActive(ctx context.Context, id string, active bool) (core.RecurringExpense, error) {
	defs, err := s.ledger.RecurringExpenses(ctx)
	if err != nil {
		return core.RecurringExpense{}, fmt.Errorf("load recurring expenses: %w", err)
	}
	i := slices.IndexFunc(defs, func(d core.RecurringExpense) bool { return d.ID == id })
	if i < 0 {
		return core.RecurringExpense{}, fmt.Errorf("recurring expense %s: %w", id, ErrNotFound)
	}

	defs[i].Active = active
	if err := s.ledger.SaveRecurringExpenses(ctx, defs); err != nil {
		return core.RecurringExpense{}, fmt.Errorf("save recurring expenses: %w", err)
	}

	slog.InfoContext(ctx, "Recurring expense toggled",
		log.FieldRecurringID, id,
		"active", active)

	return defs[i], nil
}

// Delete removes a definition. Expenses it already generated are kept.
func (s *RecurringService) Delete(ctx context.Context, id string) error {
	defs, err := s.ledger.RecurringExpenses(ctx)
	if err != nil {
		return fmt.Errorf("load recurring expenses: %w", err)
	}
	kept := slices.DeleteFunc(defs, func(d core.RecurringExpense) bool { return d.ID == id })
	if len(kept) == len(defs) {
		return fmt.Errorf("recurring expense %s: %w", id, ErrNotFound)
	}

	if err := s.ledger.SaveRecurringExpenses(ctx, kept); err != nil {
		return fmt.Errorf("save recurring expenses: %w", err)
	}

	slog.InfoContext(ctx, "Recurring expense deleted", log.FieldRecurringID, id)
	return nil
}
