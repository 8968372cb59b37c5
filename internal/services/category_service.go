package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// CategoryService manages user-defined categories alongside the built-in
// ones.
type CategoryService struct {
	ledger *storage.Ledger
}

func NewCategoryService(ledger *storage.Ledger) *CategoryService {
	return &CategoryService{ledger: ledger}
}

// All returns the built-in categories followed by the custom ones in the
// order they were added.
func (s *CategoryService) All(ctx context.Context) ([]core.Category, error) {
	custom, err := s.ledger.CustomCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return append(slices.Clone(core.DefaultCategories), custom...), nil
}

// Add creates a custom category. Its ID is derived from name and must not
// collide with any existing category.
func (s *CategoryService) Add(ctx context.Context, name, icon string) (core.Category, error) {
	name = strings.TrimSpace(name)
	id := core.CategoryID(name)
	if id == "" {
		return core.Category{}, core.ErrEmptyCategoryName
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = core.DefaultCategoryIcon
	}

	all, err := s.All(ctx)
	if err != nil {
		return core.Category{}, err
	}
	if slices.ContainsFunc(all, func(c core.Category) bool { return c.ID == id }) {
		return core.Category{}, fmt.Errorf("category %s: %w", id, core.ErrCategoryExists)
	}

	c := core.Category{ID: id, Name: name, Icon: icon, Custom: true}
	custom := all[len(core.DefaultCategories):]
	if err := s.ledger.SaveCustomCategories(ctx, append(custom, c)); err != nil {
		return core.Category{}, fmt.Errorf("save category: %w", err)
	}

	slog.InfoContext(ctx, "Category added", log.FieldCategory, id)
	return c, nil
}

// Delete removes a custom category. Expenses keep their category value.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	id = core.CategoryKey(id)
	if core.IsDefaultCategory(id) {
		return fmt.Errorf("category %s: %w", id, core.ErrBuiltinCategory)
	}

	custom, err := s.ledger.CustomCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	kept := slices.DeleteFunc(custom, func(c core.Category) bool { return c.ID == id })
	if len(kept) == len(custom) {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	if err := s.ledger.SaveCustomCategories(ctx, kept); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted", log.FieldCategory, id)
	return nil
}

// Name returns the display name of a category, falling back to the raw
// value for categories that are not defined.
func (s *CategoryService) Name(ctx context.Context, category string) (string, error) {
	all, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	key := core.CategoryKey(category)
	for _, c := range all {
		if c.ID == key {
			return c.Name, nil
		}
	}
	return category, nil
}
