// Package worker runs the recurrence pass on a schedule.
package worker

import (
	"context"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// Processor runs one recurrence pass.
type Processor interface {
	ProcessDueExpenses(ctx context.Context, today core.Date) (services.ProcessResult, error)
}

// RecurringWorker runs the processor on start and then on every tick.
type RecurringWorker struct {
	processor Processor
	clock     core.Clock
	interval  time.Duration
}

func NewRecurringWorker(processor Processor, clock core.Clock, interval time.Duration) *RecurringWorker {
	return &RecurringWorker{
		processor: processor,
		clock:     clock,
		interval:  interval,
	}
}

// RunOnce processes due recurring expenses for the clock's today.
func (w *RecurringWorker) RunOnce(ctx context.Context) (services.ProcessResult, error) {
	logger := log.FromContext(ctx)
	today := w.clock.Today()
	result, err := w.processor.ProcessDueExpenses(ctx, today)
	if err != nil {
		fields := log.NewFields().
			WithOperation(log.OpProcess).
			WithError(err)
		fields[log.FieldToday] = today.String()
		logger.ErrorContext(ctx, "Recurring processing failed", fields.ToSlice()...)
		return result, err
	}
	logger.InfoContext(ctx, "Recurring processing complete",
		log.FieldOperation, log.OpProcess,
		log.FieldToday, today.String(),
		log.FieldCount, result.Count)
	return result, nil
}

// Run processes once immediately and then every interval until ctx is
// done. Failed passes are logged and retried on the next tick.
func (w *RecurringWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Recurring worker started", "interval", w.interval)

	_, _ = w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Recurring worker stopped")
			return nil
		case now := <-ticker.C:
			if _, err := w.RunOnce(ctx); err == nil {
				slog.DebugContext(ctx, "Next recurring check scheduled",
					"next_check", now.Add(w.interval).Format("15:04:05"))
			}
		}
	}
}
