package services

import (
	"cmp"
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

// ExpenseSort orders List results.
type ExpenseSort string

const (
	SortDateDesc   ExpenseSort = "date-desc"
	SortDateAsc    ExpenseSort = "date-asc"
	SortAmountDesc ExpenseSort = "amount-desc"
	SortAmountAsc  ExpenseSort = "amount-asc"
	SortCategory   ExpenseSort = "category"
)

// ExpenseSorts lists the supported orders, default first.
var ExpenseSorts = []ExpenseSort{SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortCategory}

// ParseExpenseSort accepts any of ExpenseSorts; empty means SortDateDesc.
func ParseExpenseSort(s string) (ExpenseSort, error) {
	if s == "" {
		return SortDateDesc, nil
	}
	sort := ExpenseSort(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ExpenseSorts, sort) {
		return "", fmt.Errorf("unknown sort %q: must be one of %v", s, ExpenseSorts)
	}
	return sort, nil
}

// ExpenseFilter narrows List results. Zero fields match everything.
type ExpenseFilter struct {
	Month    string // YYYY-MM
	Category string
	Search   string // case-insensitive substring of description or category
	Sort     ExpenseSort
}

func (f ExpenseFilter) matches(e core.Expense) bool {
	if f.Month != "" && e.Date.MonthKey() != f.Month {
		return false
	}
	if f.Category != "" && core.CategoryKey(e.Category) != core.CategoryKey(f.Category) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.Category), term)
	}
	return true
}

func newestFirst(a, b core.Expense) int {
	if c := b.Date.Compare(a.Date.Time); c != 0 {
		return c
	}
	return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
}

// compare orders by the filter's sort, breaking ties newest first.
func (f ExpenseFilter) compare(a, b core.Expense) int {
	var c int
	switch f.Sort {
	case SortDateAsc:
		return -newestFirst(a, b)
	case SortAmountDesc:
		c = cmp.Compare(b.AmountInBase(), a.AmountInBase())
	case SortAmountAsc:
		c = cmp.Compare(a.AmountInBase(), b.AmountInBase())
	case SortCategory:
		c = cmp.Compare(core.CategoryKey(a.Category), core.CategoryKey(b.Category))
	}
	if c != 0 {
		return c
	}
	return newestFirst(a, b)
}

// ExpenseService handles direct entry, editing and deletion of expenses.
type ExpenseService struct {
	ledger    *storage.Ledger
	converter BaseConverter
	newID     func() string
	now       func() time.Time
}

func NewExpenseService(ledger *storage.Ledger, converter BaseConverter) *ExpenseService {
	return &ExpenseService{
		ledger:    ledger,
		converter: converter,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Create validates and stores a new expense, converting it to the base
// currency at today's rate. The base amount is never recomputed afterwards.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	e.Description = strings.TrimSpace(e.Description)
	e.Category = core.CategoryKey(e.Category)
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	e.ID = s.newID()
	e.Base = core.ConvertedAmount{Value: s.converter.ToBase(e.Amount, e.Currency)}
	e.SourceRecurringID = ""
	e.CreatedAt = s.now()

	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load expenses: %w", err)
	}
	if err := s.ledger.SaveExpenses(ctx, append(expenses, e)); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		log.FieldExpenseID, e.ID,
		log.FieldCategory, e.Category,
		log.FieldAmount, e.Amount,
		log.FieldCurrency, e.Currency,
		log.FieldAmountInBase, e.AmountInBase())

	return e, nil
}

// Update replaces the editable fields of an existing expense and converts
// it again at today's rate. ID, origin and creation time are preserved.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	e.Description = strings.TrimSpace(e.Description)
	e.Category = core.CategoryKey(e.Category)
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("load expenses: %w", err)
	}
	i := slices.IndexFunc(expenses, func(x core.Expense) bool { return x.ID == e.ID })
	if i < 0 {
		return core.Expense{}, fmt.Errorf("expense %s: %w", e.ID, ErrNotFound)
	}

	e.Base = core.ConvertedAmount{Value: s.converter.ToBase(e.Amount, e.Currency)}
	e.SourceRecurringID = expenses[i].SourceRecurringID
	e.CreatedAt = expenses[i].CreatedAt
	expenses[i] = e

	if err := s.ledger.SaveExpenses(ctx, expenses); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated",
		log.FieldExpenseID, e.ID,
		log.FieldAmount, e.Amount,
		log.FieldCurrency, e.Currency)

	return e, nil
}

// Delete removes a single expense.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	n, err := s.DeleteMany(ctx, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteMany removes every expense whose ID is in ids and returns how many
// were removed. Unknown IDs are ignored.
func (s *ExpenseService) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("load expenses: %w", err)
	}
	kept := slices.DeleteFunc(expenses, func(e core.Expense) bool {
		_, ok := drop[e.ID]
		return ok
	})
	removed := len(expenses) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.ledger.SaveExpenses(ctx, kept); err != nil {
		return 0, fmt.Errorf("save expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expenses deleted", log.FieldCount, removed)
	return removed, nil
}

// List returns the expenses matching filter in the filter's order, newest
// first by default.
func (s *ExpenseService) List(ctx context.Context, filter ExpenseFilter) ([]core.Expense, error) {
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, filter.compare)
	return out, nil
}
