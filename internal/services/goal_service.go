package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// GoalService manages savings goals.
type GoalService struct {
	ledger *storage.Ledger
	newID  func() string
	now    func() time.Time
}

func NewGoalService(ledger *storage.Ledger) *GoalService {
	return &GoalService{
		ledger: ledger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

func (s *GoalService) Add(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	g.Name = strings.TrimSpace(g.Name)
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("validate goal: %w", err)
	}
	g.ID = s.newID()
	g.CreatedAt = s.now()

	goals, err := s.ledger.SavingsGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("load goals: %w", err)
	}
	if err := s.ledger.SaveSavingsGoals(ctx, append(goals, g)); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("save goal: %w", err)
	}

	slog.InfoContext(ctx, "Savings goal added", log.FieldGoalID, g.ID, "target", g.Target)
	return g, nil
}

// Contribute adds a positive amount to a goal and reports whether the
// target has been reached.
func (s *GoalService) Contribute(ctx context.Context, id string, amount float64) (core.SavingsGoal, bool, error) {
	if !(amount > 0) {
		return core.SavingsGoal{}, false, core.ErrInvalidAmount
	}

	goals, err := s.ledger.SavingsGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, false, fmt.Errorf("load goals: %w", err)
	}
	i := slices.IndexFunc(goals, func(g core.SavingsGoal) bool { return g.ID == id })
	if i < 0 {
		return core.SavingsGoal{}, false, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}

	goals[i].Current = core.Sum(goals[i].Current, amount)
	if err := s.ledger.SaveSavingsGoals(ctx, goals); err != nil {
		return core.SavingsGoal{}, false, fmt.Errorf("save goals: %w", err)
	}

	g := goals[i]
	slog.InfoContext(ctx, "Savings goal contribution",
		log.FieldGoalID, g.ID,
		log.FieldAmount, amount,
		"current", g.Current,
		"achieved", g.Achieved())
	return g, g.Achieved(), nil
}

// List returns goals ordered by deadline.
func (s *GoalService) List(ctx context.Context) ([]core.SavingsGoal, error) {
	goals, err := s.ledger.SavingsGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	slices.SortStableFunc(goals, func(a, b core.SavingsGoal) int { return a.Deadline.Compare(b.Deadline.Time) })
	return goals, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	goals, err := s.ledger.SavingsGoals(ctx)
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	kept := slices.DeleteFunc(goals, func(g core.SavingsGoal) bool { return g.ID == id })
	if len(kept) == len(goals) {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	if err := s.ledger.SaveSavingsGoals(ctx, kept); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}

	slog.InfoContext(ctx, "Savings goal deleted", log.FieldGoalID, id)
	return nil
}
