package services

import (
	"strings"

	"fintrack/internal/core"
)

// Occurrence pairs an expense materialized by ProcessDue with the updated
// definition it came from.
type Occurrence struct {
	Definition core.RecurringExpense
	Expense    core.Expense
}

// BaseConverter converts an amount in a currency to the base currency.
type BaseConverter interface {
	ToBase(amount float64, code string) float64
}

// Scheduler computes occurrence dates for recurring definitions.
type Scheduler struct{}

// Next returns the next occurrence of def, or false when there is none.
//
// The next occurrence is one period after LastProcessed, or after StartDate
// when the definition has never been processed. Inactive definitions,
// definitions without a start date and unknown frequencies have none, as
// does a next date strictly after EndDate. The result does not depend on
// the current date: a date in the past means the definition is due.
func (Scheduler) Next(def core.RecurringExpense) (core.Date, bool) {
	if !def.Active || def.StartDate.IsEmpty() {
		return core.Date{}, false
	}
	advancer, err := GetPeriodAdvancer(def.Frequency)
	if err != nil {
		return core.Date{}, false
	}

	base := def.StartDate
	if !def.LastProcessed.IsEmpty() {
		base = def.LastProcessed
	}
	next := advancer.Advance(base)

	if !def.EndDate.IsEmpty() && next.After(def.EndDate) {
		return core.Date{}, false
	}
	return next, true
}

// Due reports whether def has an occurrence on or before today.
func (s Scheduler) Due(def core.RecurringExpense, today core.Date) bool {
	next, ok := s.Next(def)
	return ok && !next.After(today)
}

// ProcessDue materializes at most one expense for every definition in defs
// that is due on today. The expense is dated today, whatever its scheduled
// date was, so a definition that fell several periods behind catches up by
// one period per call. LastProcessed of each processed definition in defs
// is set to today. newID supplies expense IDs.
func ProcessDue(defs []core.RecurringExpense, today core.Date, conv BaseConverter, newID func() string) []Occurrence {
	var scheduler Scheduler
	var out []Occurrence

	for i := range defs {
		def := &defs[i]
		if !scheduler.Due(*def, today) {
			continue
		}

		currency := strings.ToUpper(def.Currency)
		expense := core.Expense{
			ID:                newID(),
			Description:       def.Description + core.AutoSuffix,
			Category:          def.Category,
			Amount:            def.Amount,
			Currency:          currency,
			Date:              today,
			Base:              core.ConvertedAmount{Value: conv.ToBase(def.Amount, currency)},
			SourceRecurringID: def.ID,
			CreatedAt:         today.Time,
		}
		def.LastProcessed = today

		out = append(out, Occurrence{Definition: *def, Expense: expense})
	}

	return out
}
