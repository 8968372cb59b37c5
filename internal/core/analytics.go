package core

import (
	"fmt"
	"slices"
	"strings"
)

const (
	CurrentMonth Timeframe = "current-month"
	LastMonth    Timeframe = "last-month"
	Last3Months  Timeframe = "last-3-months"
	Last6Months  Timeframe = "last-6-months"
	CurrentYear  Timeframe = "current-year"
)

// ComparisonMonths is how many calendar months, ending with the current
// one, the month-over-month comparison covers.
const ComparisonMonths = 6

// Timeframes lists the supported analysis windows, default first.
var Timeframes = []Timeframe{CurrentMonth, LastMonth, Last3Months, Last6Months, CurrentYear}

type (
	// Timeframe names a window of whole calendar months relative to today.
	Timeframe string

	// PeriodAmount is a total for one labelled period.
	PeriodAmount struct {
		Label  string
		Amount float64
	}

	// Analytics aggregates the expenses dated inside a timeframe. Amounts
	// are in base currency.
	Analytics struct {
		Timeframe     Timeframe
		Start, End    Date
		Count         int
		Total         float64
		AveragePerDay float64
		Top           CategoryAmount // zero when Count is 0
		ByCategory    []CategoryAmount
		// Trend holds one point per day of the month for single-month
		// timeframes and one per month otherwise, in date order.
		Trend []PeriodAmount
		// Comparison covers the ComparisonMonths calendar months ending with
		// today's, oldest first, independent of the timeframe.
		Comparison []PeriodAmount
	}
)

func ParseTimeframe(s string) (Timeframe, error) {
	if s == "" {
		return CurrentMonth, nil
	}
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Timeframes, tf) {
		return "", fmt.Errorf("unknown timeframe %q: must be one of %v", s, Timeframes)
	}
	return tf, nil
}

// Range returns the first and last day of the timeframe as seen from today.
func (t Timeframe) Range(today Date) (Date, Date) {
	y, m := today.Year(), today.Month()
	endOfMonth := NewDate(y, m+1, 0)
	switch t {
	case LastMonth:
		return NewDate(y, m-1, 1), NewDate(y, m, 0)
	case Last3Months:
		return NewDate(y, m-2, 1), endOfMonth
	case Last6Months:
		return NewDate(y, m-5, 1), endOfMonth
	case CurrentYear:
		return NewDate(y, 1, 1), NewDate(y, 12, 31)
	default:
		return NewDate(y, m, 1), endOfMonth
	}
}

// Daily reports whether the trend is broken down by day rather than month.
func (t Timeframe) Daily() bool {
	return t == CurrentMonth || t == LastMonth
}

// ElapsedDays is the number of days of the timeframe that have passed by
// today, counting today. Windows that are already over count in full.
func (t Timeframe) ElapsedDays(today Date) int {
	start, end := t.Range(today)
	if today.Before(end) {
		end = today
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start.Time).Hours()/24) + 1
}
