package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type countingProcessor struct {
	mu    sync.Mutex
	days  []core.Date
	err   error
	calls chan struct{}
}

func (p *countingProcessor) ProcessDueExpenses(_ context.Context, today core.Date) (services.ProcessResult, error) {
	p.mu.Lock()
	p.days = append(p.days, today)
	p.mu.Unlock()
	select {
	case p.calls <- struct{}{}:
	default:
	}
	if p.err != nil {
		return services.ProcessResult{}, p.err
	}
	return services.ProcessResult{Count: 1}, nil
}

func TestRecurringWorker_RunOnceUsesClock(t *testing.T) {
	p := &countingProcessor{calls: make(chan struct{}, 1)}
	today := core.NewDate(2024, 6, 1)
	w := NewRecurringWorker(p, core.FixedClock(today), time.Hour)

	result, err := w.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if result.Count != 1 {
		t.Errorf("Count = %d, want 1", result.Count)
	}
	if len(p.days) != 1 || !p.days[0].Equal(today) {
		t.Errorf("processor called with %v, want [%s]", p.days, today)
	}
}

func TestRecurringWorker_RunOnceReturnsError(t *testing.T) {
	p := &countingProcessor{err: errors.New("store unavailable"), calls: make(chan struct{}, 1)}
	w := NewRecurringWorker(p, core.FixedClock(core.NewDate(2024, 6, 1)), time.Hour)

	if _, err := w.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecurringWorker_RunTicksUntilCancelled(t *testing.T) {
	p := &countingProcessor{err: errors.New("keeps failing"), calls: make(chan struct{}, 8)}
	w := NewRecurringWorker(p, core.FixedClock(core.NewDate(2024, 6, 1)), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-p.calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("processor called %d times, want at least 3", i)
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancellation")
	}
}
