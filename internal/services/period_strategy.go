// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for advancing a recurring
// expense by one period. Each frequency has its own advancer that
// encapsulates the calendar arithmetic for that cadence.
package services

import (
	"fmt"

	"fintrack/internal/core"
)

// PeriodAdvancer is the strategy interface for stepping a date forward by
// one period of a given frequency.
type PeriodAdvancer interface {
	// Advance returns the date one period after from.
	Advance(from core.Date) core.Date
}

// WeeklyAdvancer steps forward seven days.
type WeeklyAdvancer struct{}

func (WeeklyAdvancer) Advance(from core.Date) core.Date {
	return from.AddDays(7)
}

// MonthlyAdvancer steps forward a number of calendar months, clamping to the
// last day of the target month. Monthly, quarterly and yearly cadences are
// all month steps.
type MonthlyAdvancer struct {
	Months int
}

func (a MonthlyAdvancer) Advance(from core.Date) core.Date {
	return from.AddMonthsClamped(a.Months)
}

// periodAdvancers maps frequencies to their advancers.
var periodAdvancers = map[core.Frequency]PeriodAdvancer{
	core.Weekly:    WeeklyAdvancer{},
	core.Monthly:   MonthlyAdvancer{Months: 1},
	core.Quarterly: MonthlyAdvancer{Months: 3},
	core.Yearly:    MonthlyAdvancer{Months: 12},
}

// GetPeriodAdvancer returns the advancer for a frequency.
// Returns an error if the frequency is not supported.
func GetPeriodAdvancer(frequency core.Frequency) (PeriodAdvancer, error) {
	advancer, ok := periodAdvancers[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return advancer, nil
}

// RegisterPeriodAdvancer registers an advancer for a new frequency. It is
// not safe to call concurrently with scheduling.
func RegisterPeriodAdvancer(frequency core.Frequency, advancer PeriodAdvancer) {
	periodAdvancers[frequency] = advancer
}
