package core

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCategoryName = errors.New("empty category name")
	ErrCategoryExists    = errors.New("category already exists")
	ErrBuiltinCategory   = errors.New("built-in categories cannot be deleted")
)

// Category is a named expense category. Expenses and budgets refer to it
// by ID.
type Category struct {
	ID     string
	Name   string
	Icon   string
	Custom bool
}

// DefaultCategories are always available and cannot be removed.
var DefaultCategories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍔"},
	{ID: "transport", Name: "Transportation", Icon: "🚗"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️"},
	{ID: "bills", Name: "Bills & Utilities", Icon: "📄"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬"},
	{ID: "health", Name: "Health & Medical", Icon: "🏥"},
	{ID: "other", Name: "Other", Icon: "📦"},
}

// DefaultCategoryIcon is used for custom categories added without one.
const DefaultCategoryIcon = "📦"

// CategoryKey is the canonical form of a category reference: trimmed and
// lower-cased. Every comparison, grouping and map key over categories goes
// through it.
func CategoryKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// CategoryID derives the ID of a custom category from its display name by
// keeping only lower-case ASCII letters and digits.
func CategoryID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDefaultCategory reports whether id names a built-in category.
func IsDefaultCategory(id string) bool {
	key := CategoryKey(id)
	for _, c := range DefaultCategories {
		if c.ID == key {
			return true
		}
	}
	return false
}
