package core

import "errors"

const (
	BudgetOK       BudgetLevel = "ok"
	BudgetWarning  BudgetLevel = "warning"
	BudgetExceeded BudgetLevel = "exceeded"
)

// Budget thresholds as a share of the limit.
const (
	BudgetWarningRatio  = 0.8
	BudgetExceededRatio = 1.0
)

var ErrInvalidBudget = errors.New("budget limit must be positive")

type (
	BudgetLevel string

	// Budgets maps a category to its monthly limit in base currency.
	Budgets map[string]float64

	BudgetStatus struct {
		Category  string
		Limit     float64
		Spent     float64
		Remaining float64 // never negative
		Percent   float64 // uncapped share of the limit, in percent
		Level     BudgetLevel
	}
)

// LevelFor classifies spent against limit.
func LevelFor(spent, limit float64) BudgetLevel {
	if limit <= 0 {
		return BudgetOK
	}
	ratio := spent / limit
	switch {
	case ratio >= BudgetExceededRatio:
		return BudgetExceeded
	case ratio >= BudgetWarningRatio:
		return BudgetWarning
	default:
		return BudgetOK
	}
}

// NewBudgetStatus computes the status of one category.
func NewBudgetStatus(category string, limit, spent float64) BudgetStatus {
	remaining := limit - spent
	if remaining < 0 {
		remaining = 0
	}
	var percent float64
	if limit > 0 {
		percent = spent / limit * 100
	}
	return BudgetStatus{
		Category:  category,
		Limit:     limit,
		Spent:     spent,
		Remaining: remaining,
		Percent:   percent,
		Level:     LevelFor(spent, limit),
	}
}

// BarPercent caps Percent at 100 for progress display.
func (s BudgetStatus) BarPercent() float64 {
	if s.Percent > 100 {
		return 100
	}
	return s.Percent
}

// Overage is how far spending exceeds the limit, zero otherwise.
func (s BudgetStatus) Overage() float64 {
	if s.Spent > s.Limit {
		return s.Spent - s.Limit
	}
	return 0
}
