package storage

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/core"
)

// recordID accepts both string and numeric JSON identifiers. Older data
// used millisecond timestamps as numeric IDs.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = recordID(n.String())
	return nil
}

type expenseRecord struct {
	ID           recordID `json:"id"`
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency,omitempty"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	ExchangeRate float64  `json:"exchangeRate,omitempty"`
	AmountInBase *float64 `json:"amountInINR,omitempty"`
	IsRecurring  bool     `json:"isRecurring,omitempty"`
	RecurringID  recordID `json:"recurringId,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
}

type recurringRecord struct {
	ID            recordID `json:"id"`
	Description   string   `json:"description"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency,omitempty"`
	Category      string   `json:"category"`
	Frequency     string   `json:"frequency"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate,omitempty"`
	IsActive      bool     `json:"isActive"`
	LastProcessed string   `json:"lastProcessed,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

type goalRecord struct {
	ID            recordID `json:"id"`
	Name          string   `json:"name"`
	Target        float64  `json:"target"`
	Deadline      string   `json:"deadline"`
	Category      string   `json:"category,omitempty"`
	CurrentAmount float64  `json:"currentAmount"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

type categoryRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// fallbackCurrency fills records written before currencies were tracked.
const fallbackCurrency = "INR"

func parseDateField(kind, id, field, value string) core.Date {
	d, err := core.ParseDate(value)
	if err != nil {
		slog.Warn("Ignoring unparseable date in stored record",
			"record", kind, "id", id, "field", field, "value", value)
		return core.Date{}
	}
	return d
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func currencyOrDefault(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return fallbackCurrency
	}
	return c
}

func (r expenseRecord) toCore() core.Expense {
	id := string(r.ID)
	return core.Expense{
		ID:                id,
		Description:       r.Description,
		Category:          r.Category,
		Amount:            r.Amount,
		Currency:          currencyOrDefault(r.Currency),
		Date:              parseDateField("expense", id, "date", r.Date),
		Base:              core.ResolveBase(r.AmountInBase),
		SourceRecurringID: string(r.RecurringID),
		CreatedAt:         parseTimestamp(r.CreatedAt),
	}
}

func expenseToRecord(e core.Expense) expenseRecord {
	r := expenseRecord{
		ID:          recordID(e.ID),
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		Date:        e.Date.String(),
		IsRecurring: e.Generated(),
		RecurringID: recordID(e.SourceRecurringID),
		CreatedAt:   formatTimestamp(e.CreatedAt),
	}
	if b, ok := e.Base.(core.ConvertedAmount); ok {
		v := b.Value
		r.AmountInBase = &v
		if e.Amount != 0 {
			r.ExchangeRate = v / e.Amount
		}
	}
	return r
}

func (r recurringRecord) toCore() core.RecurringExpense {
	id := string(r.ID)
	return core.RecurringExpense{
		ID:            id,
		Description:   r.Description,
		Category:      r.Category,
		Amount:        r.Amount,
		Currency:      currencyOrDefault(r.Currency),
		Frequency:     core.Frequency(r.Frequency),
		StartDate:     parseDateField("recurring", id, "startDate", r.StartDate),
		EndDate:       parseDateField("recurring", id, "endDate", r.EndDate),
		Active:        r.IsActive,
		LastProcessed: parseDateField("recurring", id, "lastProcessed", r.LastProcessed),
		CreatedAt:     parseTimestamp(r.CreatedAt),
	}
}

func recurringToRecord(re core.RecurringExpense) recurringRecord {
	return recurringRecord{
		ID:            recordID(re.ID),
		Description:   re.Description,
		Amount:        re.Amount,
		Currency:      re.Currency,
		Category:      re.Category,
		Frequency:     string(re.Frequency),
		StartDate:     re.StartDate.String(),
		EndDate:       re.EndDate.String(),
		IsActive:      re.Active,
		LastProcessed: re.LastProcessed.String(),
		CreatedAt:     formatTimestamp(re.CreatedAt),
	}
}

func (r goalRecord) toCore() core.SavingsGoal {
	id := string(r.ID)
	return core.SavingsGoal{
		ID:        id,
		Name:      r.Name,
		Category:  r.Category,
		Target:    r.Target,
		Current:   r.CurrentAmount,
		Deadline:  parseDateField("goal", id, "deadline", r.Deadline),
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

func goalToRecord(g core.SavingsGoal) goalRecord {
	return goalRecord{
		ID:            recordID(g.ID),
		Name:          g.Name,
		Target:        g.Target,
		Deadline:      g.Deadline.String(),
		Category:      g.Category,
		CurrentAmount: g.Current,
		CreatedAt:     formatTimestamp(g.CreatedAt),
	}
}

func (r categoryRecord) toCore() core.Category {
	return core.Category{ID: r.ID, Name: r.Name, Icon: r.Icon, Custom: true}
}

func categoryToRecord(c core.Category) categoryRecord {
	return categoryRecord{ID: c.ID, Name: c.Name, Icon: c.Icon}
}
