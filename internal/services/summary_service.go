package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"fintrack/internal/core"
	"fintrack/internal/currency"
	"fintrack/internal/storage"
)

// SummaryService computes spending totals in base currency and renders
// them in the display currency.
type SummaryService struct {
	ledger    *storage.Ledger
	converter *currency.Converter
	display   string
}

func NewSummaryService(ledger *storage.Ledger, converter *currency.Converter, displayCurrency string) *SummaryService {
	if displayCurrency == "" {
		displayCurrency = converter.Base()
	}
	return &SummaryService{
		ledger:    ledger,
		converter: converter,
		display:   displayCurrency,
	}
}

// DisplayCurrency returns the currency totals are rendered in.
func (s *SummaryService) DisplayCurrency() string {
	return s.display
}

// Summarize totals every expense by its base amount: the calendar month and
// the Sunday-to-Saturday week containing today, all time, and per category
// for the month.
func (s *SummaryService) Summarize(ctx context.Context, today core.Date) (core.Summary, error) {
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load expenses: %w", err)
	}

	weekStart, weekEnd := core.WeekRange(today)
	month := today.MonthKey()

	var all, monthly, weekly core.Accumulator
	var inMonth []core.Expense
	for _, e := range expenses {
		amount := e.AmountInBase()
		all.Add(amount)
		if !e.Date.Before(weekStart) && !e.Date.After(weekEnd) {
			weekly.Add(amount)
		}
		if e.Date.MonthKey() == month {
			monthly.Add(amount)
			inMonth = append(inMonth, e)
		}
	}

	return core.Summary{
		AsOf:       today,
		Month:      monthly.Total(),
		Week:       weekly.Total(),
		AllTime:    all.Total(),
		Count:      len(expenses),
		ByCategory: categoryTotals(inMonth),
	}, nil
}

// Analytics aggregates the expenses dated within timeframe as seen from
// today, plus a month-over-month comparison of the last six months.
func (s *SummaryService) Analytics(ctx context.Context, timeframe core.Timeframe, today core.Date) (core.Analytics, error) {
	expenses, err := s.ledger.Expenses(ctx)
	if err != nil {
		return core.Analytics{}, fmt.Errorf("load expenses: %w", err)
	}

	start, end := timeframe.Range(today)
	a := core.Analytics{Timeframe: timeframe, Start: start, End: end}

	var total core.Accumulator
	var inRange []core.Expense
	trend := make(map[string]*core.Accumulator)
	for _, e := range expenses {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		inRange = append(inRange, e)
		total.Add(e.AmountInBase())

		label := e.Date.MonthKey()
		if timeframe.Daily() {
			label = e.Date.String()
		}
		acc, ok := trend[label]
		if !ok {
			acc = &core.Accumulator{}
			trend[label] = acc
		}
		acc.Add(e.AmountInBase())
	}

	a.Count = len(inRange)
	a.Total = total.Total()
	if days := timeframe.ElapsedDays(today); days > 0 {
		a.AveragePerDay = a.Total / float64(days)
	}
	a.ByCategory = categoryTotals(inRange)
	if len(a.ByCategory) > 0 {
		a.Top = a.ByCategory[0]
	}

	labels := make([]string, 0, len(trend))
	for label := range trend {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		a.Trend = append(a.Trend, core.PeriodAmount{Label: label, Amount: trend[label].Total()})
	}

	a.Comparison = monthlyComparison(expenses, today)
	return a, nil
}

func monthlyComparison(expenses []core.Expense, today core.Date) []core.PeriodAmount {
	first := core.NewDate(today.Year(), today.Month()-(core.ComparisonMonths-1), 1)
	months := make([]core.Accumulator, core.ComparisonMonths)
	index := make(map[string]int, core.ComparisonMonths)
	for i := range months {
		index[first.AddMonthsClamped(i).MonthKey()] = i
	}
	for _, e := range expenses {
		if i, ok := index[e.Date.MonthKey()]; ok {
			months[i].Add(e.AmountInBase())
		}
	}

	out := make([]core.PeriodAmount, core.ComparisonMonths)
	for i := range months {
		out[i] = core.PeriodAmount{
			Label:  first.AddMonthsClamped(i).Format("Jan 2006"),
			Amount: months[i].Total(),
		}
	}
	return out
}

// categoryTotals groups expenses by category key, largest total first.
func categoryTotals(expenses []core.Expense) []core.CategoryAmount {
	byCategory := make(map[string]*core.Accumulator)
	for _, e := range expenses {
		key := core.CategoryKey(e.Category)
		acc, ok := byCategory[key]
		if !ok {
			acc = &core.Accumulator{}
			byCategory[key] = acc
		}
		acc.Add(e.AmountInBase())
	}

	categories := make([]core.CategoryAmount, 0, len(byCategory))
	for name, acc := range byCategory {
		categories = append(categories, core.CategoryAmount{Name: name, Amount: acc.Total()})
	}
	slices.SortFunc(categories, func(a, b core.CategoryAmount) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return categories
}

// InDisplay converts a base-currency amount to the display currency and
// formats it.
func (s *SummaryService) InDisplay(amountInBase float64) string {
	return s.converter.Format(s.converter.FromBase(amountInBase, s.display), s.display)
}
