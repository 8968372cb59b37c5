package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Publisher announces generated expenses to other systems.
type Publisher interface {
	PublishExpenseGenerated(ctx context.Context, e core.Expense) error
}

// ProcessResult reports the outcome of one recurrence pass.
type ProcessResult struct {
	Count     int
	Generated []core.Expense
}

// RecurringProcessor handles the automatic creation of expenses from
// recurring definitions.
type RecurringProcessor struct {
	ledger    *storage.Ledger
	converter BaseConverter
	publisher Publisher
	newID     func() string
	now       func() time.Time

	mu sync.Mutex
}

// NewRecurringProcessor creates a new recurring expense processor. publisher
// may be nil.
func NewRecurringProcessor(ledger *storage.Ledger, converter BaseConverter, publisher Publisher) *RecurringProcessor {
	return &RecurringProcessor{
		ledger:    ledger,
		converter: converter,
		publisher: publisher,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// ProcessDueExpenses runs one recurrence pass for today: every due
// definition yields one expense, expenses are persisted before the updated
// definitions, and each generated expense is published when a publisher is
// configured. Passes are serialized.
func (p *RecurringProcessor) ProcessDueExpenses(ctx context.Context, today core.Date) (ProcessResult, error) {
	if p.ledger == nil || p.converter == nil {
		return ProcessResult{}, fmt.Errorf("processor not properly initialized")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	defs, err := p.ledger.RecurringExpenses(ctx)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("load recurring expenses: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring expenses",
		"total_definitions", len(defs),
		log.FieldToday, today.String())

	occurrences := ProcessDue(defs, today, p.converter, p.newID)
	if len(occurrences) == 0 {
		slog.InfoContext(ctx, "No recurring expenses due", log.FieldToday, today.String())
		return ProcessResult{}, nil
	}

	expenses, err := p.ledger.Expenses(ctx)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("load expenses: %w", err)
	}

	createdAt := p.now()
	generated := make([]core.Expense, 0, len(occurrences))
	for _, occ := range occurrences {
		e := occ.Expense
		e.CreatedAt = createdAt
		generated = append(generated, e)

		slog.InfoContext(ctx, "Created expense from recurring definition",
			log.FieldRecurringID, occ.Definition.ID,
			log.FieldExpenseID, e.ID,
			log.FieldDescription, occ.Definition.Description,
			log.FieldAmount, e.Amount,
			log.FieldCurrency, e.Currency,
			log.FieldAmountInBase, e.AmountInBase(),
			log.FieldFrequency, occ.Definition.Frequency)
	}
	expenses = append(expenses, generated...)

	if err := p.ledger.SaveExpenses(ctx, expenses); err != nil {
		return ProcessResult{}, fmt.Errorf("save expenses: %w", err)
	}
	if err := p.ledger.SaveRecurringExpenses(ctx, defs); err != nil {
		return ProcessResult{}, fmt.Errorf("save recurring expenses: %w", err)
	}

	p.publish(ctx, generated)

	slog.InfoContext(ctx, "Recurring expense processing complete",
		"processed", len(generated),
		"total_checked", len(defs))

	return ProcessResult{Count: len(generated), Generated: generated}, nil
}

func (p *RecurringProcessor) publish(ctx context.Context, generated []core.Expense) {
	if p.publisher == nil {
		return
	}
	for _, e := range generated {
		if err := p.publisher.PublishExpenseGenerated(ctx, e); err != nil {
			slog.ErrorContext(ctx, "Failed to publish generated expense",
				log.FieldExpenseID, e.ID,
				log.FieldRecurringID, e.SourceRecurringID,
				log.FieldError, err)
		}
	}
}
