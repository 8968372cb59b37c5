package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// RoutingExpenseGenerated is the routing key for expenses created by the
// recurrence pass.
const RoutingExpenseGenerated = "recurring.expense.generated"

// ExpenseGeneratedMessage announces an expense produced from a recurring
// definition. It carries the full record so consumers need no store access.
type ExpenseGeneratedMessage struct {
	ExpenseID    string    `json:"expenseId"`
	RecurringID  string    `json:"recurringId"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	AmountInBase float64   `json:"amountInBase"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewExpenseGeneratedMessage builds the event for a generated expense.
func NewExpenseGeneratedMessage(e core.Expense) *ExpenseGeneratedMessage {
	return &ExpenseGeneratedMessage{
		ExpenseID:    e.ID,
		RecurringID:  e.SourceRecurringID,
		Description:  e.Description,
		Category:     e.Category,
		Amount:       e.Amount,
		Currency:     e.Currency,
		AmountInBase: e.AmountInBase(),
		Date:         e.Date.String(),
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseGeneratedMessageFromJSON decodes a message from JSON bytes
func ExpenseGeneratedMessageFromJSON(data []byte) (*ExpenseGeneratedMessage, error) {
	var msg ExpenseGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
