package core

import (
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"plain month", NewDate(2024, 3, 15), 1, NewDate(2024, 4, 15)},
		{"jan 31 to leap feb", NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{"jan 31 to common feb", NewDate(2023, 1, 31), 1, NewDate(2023, 2, 28)},
		{"mar 31 to apr 30", NewDate(2024, 3, 31), 1, NewDate(2024, 4, 30)},
		{"quarter from nov 30", NewDate(2023, 11, 30), 3, NewDate(2024, 2, 29)},
		{"across year end", NewDate(2024, 12, 31), 1, NewDate(2025, 1, 31)},
		{"leap day plus a year", NewDate(2024, 2, 29), 12, NewDate(2025, 2, 28)},
		{"no drift back after clamping", NewDate(2024, 2, 29), 1, NewDate(2024, 3, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.AddMonthsClamped(tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonthsClamped(%s, %d) = %s, want %s", tt.from, tt.n, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-02-29", NewDate(2024, 2, 29), false},
		{"2024-02-01T10:00:00.000Z", NewDate(2024, 2, 1), false},
		{"2024-02-01T23:30:00+05:30", NewDate(2024, 2, 1), false},
		{"", Date{}, false},
		{"01/02/2024", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2025, 1, 1),
		Description: "ok",
		Amount:      1,
		Currency:    "INR",
		Category:    "food",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: Date{Time: time.Time{}}, Description: "a", Amount: 1, Currency: "INR", Category: "c"}, // zero date
		{Date: NewDate(2025, 1, 1), Description: "", Amount: 1, Currency: "INR", Category: "c"},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: 0, Currency: "INR", Category: "c"},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: 1, Currency: "INR", Category: ""},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: 1, Currency: "", Category: "c"},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: 1, Currency: "U$D", Category: "c"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRecurringExpenseValidate(t *testing.T) {
	base := RecurringExpense{
		Description: "rent",
		Category:    "bills",
		Amount:      1000,
		Currency:    "INR",
		Frequency:   Monthly,
		StartDate:   NewDate(2024, 1, 1),
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	badFreq := base
	badFreq.Frequency = "daily"
	if err := badFreq.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	badRange := base
	badRange.EndDate = NewDate(2023, 12, 31)
	if err := badRange.Validate(); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	sameDay := base
	sameDay.EndDate = base.StartDate
	if err := sameDay.Validate(); err != nil {
		t.Fatalf("end date equal to start date should be valid, got %v", err)
	}

	noStart := base
	noStart.StartDate = Date{}
	if err := noStart.Validate(); err == nil {
		t.Fatal("expected error for missing start date")
	}
}

func TestAmountInBase(t *testing.T) {
	converted := Expense{Amount: 10, Currency: "USD", Base: ConvertedAmount{Value: 835}}
	if got := converted.AmountInBase(); got != 835 {
		t.Errorf("converted AmountInBase() = %v, want 835", got)
	}

	legacy := Expense{Amount: 10, Currency: "USD", Base: LegacyAmount{}}
	if got := legacy.AmountInBase(); got != 10 {
		t.Errorf("legacy AmountInBase() = %v, want 10", got)
	}

	stored := 835.0
	zero := 0.0
	if _, ok := ResolveBase(&stored).(ConvertedAmount); !ok {
		t.Error("ResolveBase with a stored value should be ConvertedAmount")
	}
	if _, ok := ResolveBase(&zero).(LegacyAmount); !ok {
		t.Error("ResolveBase with zero should be LegacyAmount")
	}
	if _, ok := ResolveBase(nil).(LegacyAmount); !ok {
		t.Error("ResolveBase with nil should be LegacyAmount")
	}
}

func TestWeekRange(t *testing.T) {
	// 2024-05-15 is a Wednesday.
	start, end := WeekRange(NewDate(2024, 5, 15))
	if !start.Equal(NewDate(2024, 5, 12)) || !end.Equal(NewDate(2024, 5, 18)) {
		t.Fatalf("WeekRange = %s..%s, want 2024-05-12..2024-05-18", start, end)
	}
}

func TestBudgetStatus(t *testing.T) {
	tests := []struct {
		name      string
		limit     float64
		spent     float64
		level     BudgetLevel
		remaining float64
		bar       float64
	}{
		{"under", 1000, 500, BudgetOK, 500, 50},
		{"warning at 80%", 1000, 800, BudgetWarning, 200, 80},
		{"exceeded at 100%", 1000, 1000, BudgetExceeded, 0, 100},
		{"over", 1000, 1500, BudgetExceeded, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewBudgetStatus("food", tt.limit, tt.spent)
			if s.Level != tt.level || s.Remaining != tt.remaining || s.BarPercent() != tt.bar {
				t.Errorf("status = %+v (bar %v), want level %s remaining %v bar %v",
					s, s.BarPercent(), tt.level, tt.remaining, tt.bar)
			}
		})
	}
	if over := NewBudgetStatus("food", 1000, 1500).Overage(); over != 500 {
		t.Errorf("Overage() = %v, want 500", over)
	}
}

func TestSavingsGoal(t *testing.T) {
	g := SavingsGoal{Name: "trip", Target: 1000, Current: 250, Deadline: NewDate(2024, 6, 30)}
	if err := g.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if g.Progress() != 25 {
		t.Errorf("Progress() = %v, want 25", g.Progress())
	}
	if g.Achieved() {
		t.Error("goal should not be achieved")
	}
	if d := g.DaysLeft(NewDate(2024, 6, 20)); d != 10 {
		t.Errorf("DaysLeft() = %d, want 10", d)
	}
	if d := g.DaysLeft(NewDate(2024, 7, 2)); d >= 0 {
		t.Errorf("DaysLeft() after deadline = %d, want negative", d)
	}
}

func TestTimeframeRange(t *testing.T) {
	tests := []struct {
		tf         Timeframe
		today      Date
		start, end Date
		elapsed    int
	}{
		{CurrentMonth, NewDate(2024, 2, 10), NewDate(2024, 2, 1), NewDate(2024, 2, 29), 10},
		{LastMonth, NewDate(2024, 1, 15), NewDate(2023, 12, 1), NewDate(2023, 12, 31), 31},
		{Last3Months, NewDate(2024, 2, 1), NewDate(2023, 12, 1), NewDate(2024, 2, 29), 63},
		{Last6Months, NewDate(2024, 1, 31), NewDate(2023, 8, 1), NewDate(2024, 1, 31), 184},
		{CurrentYear, NewDate(2024, 1, 1), NewDate(2024, 1, 1), NewDate(2024, 12, 31), 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			start, end := tt.tf.Range(tt.today)
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Errorf("Range(%s) = %s..%s, want %s..%s", tt.today, start, end, tt.start, tt.end)
			}
			if got := tt.tf.ElapsedDays(tt.today); got != tt.elapsed {
				t.Errorf("ElapsedDays(%s) = %d, want %d", tt.today, got, tt.elapsed)
			}
		})
	}
}

func TestParseTimeframe(t *testing.T) {
	if tf, err := ParseTimeframe(""); err != nil || tf != CurrentMonth {
		t.Fatalf("ParseTimeframe(\"\") = %q, %v; want current-month", tf, err)
	}
	if tf, err := ParseTimeframe("Last-6-Months"); err != nil || tf != Last6Months {
		t.Fatalf("ParseTimeframe = %q, %v; want last-6-months", tf, err)
	}
	if _, err := ParseTimeframe("fortnight"); err == nil {
		t.Fatal("expected error for unknown timeframe")
	}
}

func TestCategoryKeyAndID(t *testing.T) {
	if got := CategoryKey("  Food "); got != "food" {
		t.Errorf("CategoryKey = %q, want food", got)
	}
	if got := CategoryID("Pet Care & Vet 2"); got != "petcarevet2" {
		t.Errorf("CategoryID = %q, want petcarevet2", got)
	}
	if !IsDefaultCategory("Bills") || IsDefaultCategory("pets") {
		t.Error("IsDefaultCategory mismatch")
	}
}
