package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// AutoSuffix marks expenses materialized from a recurring definition.
const AutoSuffix = " (Auto)"

type (
	Frequency string

	Date struct {
		time.Time
	}

	Expense struct {
		ID                string
		Description       string
		Category          string
		Amount            float64
		Currency          string
		Date              Date
		Base              BaseAmount
		SourceRecurringID string // empty for direct entries
		CreatedAt         time.Time
	}

	RecurringExpense struct {
		ID            string
		Description   string
		Category      string
		Amount        float64
		Currency      string
		Frequency     Frequency
		StartDate     Date
		EndDate       Date // zero means open-ended
		Active        bool
		LastProcessed Date // zero until the first occurrence is materialized
		CreatedAt     time.Time
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	default:
		return false
	}
}

func (f Frequency) String() string {
	return string(f)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day. Out-of-range values
// normalize the way time.Date does.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// IsEmpty returns true if the date is zero (optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+n)
}

// AddMonthsClamped moves the date by n calendar months, keeping the day of
// month and clamping it to the last day of the target month when needed.
func (d Date) AddMonthsClamped(n int) Date {
	first := NewDate(d.Year(), d.Month()+n, 1)
	day := d.Day()
	if last := DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// MonthKey renders the date's month as YYYY-MM.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Timestamps keep
// only their date part as written, without converting zones.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t), nil
	}
	if len(s) > 10 {
		if t, err := time.Parse(time.DateOnly, s[:10]); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD", s)
}

func validateCommon(description, category, currency string, amount float64) error {
	if len(strings.TrimSpace(description)) == 0 {
		return ErrEmptyDescription
	}
	if len(description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !(amount > 0) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	if !ValidCurrencyCode(currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// ValidCurrencyCode accepts any non-empty code of letters and digits.
// Custom codes are allowed; they convert by identity.
func ValidCurrencyCode(code string) bool {
	if code == "" || len(code) > 8 {
		return false
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return validateCommon(e.Description, e.Category, e.Currency, e.Amount)
}

// AmountInBase resolves the record's base-currency amount.
func (e Expense) AmountInBase() float64 {
	switch b := e.Base.(type) {
	case ConvertedAmount:
		return b.Value
	default:
		return e.Amount
	}
}

// Generated reports whether the expense was produced by a recurring definition.
func (e Expense) Generated() bool {
	return e.SourceRecurringID != ""
}

func (re RecurringExpense) Validate() error {
	if err := re.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}

	if !re.EndDate.IsZero() {
		if err := re.EndDate.Validate(); err != nil {
			return errors.New("invalid end date: " + err.Error())
		}
		if re.EndDate.Before(re.StartDate) {
			return ErrInvalidDateRange
		}
	}

	if !re.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	return validateCommon(re.Description, re.Category, re.Currency, re.Amount)
}
