package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

var ErrEmptyGoalName = errors.New("empty goal name")

// SavingsGoal tracks progress towards a target amount in base currency.
type SavingsGoal struct {
	ID        string
	Name      string
	Category  string
	Target    float64
	Current   float64
	Deadline  Date
	CreatedAt time.Time
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGoalName
	}
	if !(g.Target > 0) {
		return ErrInvalidAmount
	}
	if g.Current < 0 {
		return ErrInvalidAmount
	}
	return g.Deadline.Validate()
}

// Progress returns the saved share of the target in percent (uncapped).
func (g SavingsGoal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	return g.Current / g.Target * 100
}

// Achieved reports whether the target has been reached.
func (g SavingsGoal) Achieved() bool {
	return g.Current >= g.Target
}

// DaysLeft counts whole days from today until the deadline; zero or
// negative means overdue.
func (g SavingsGoal) DaysLeft(today Date) int {
	return int(math.Round(g.Deadline.Sub(today.Time).Hours() / 24))
}
