package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/core"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4F8EF7")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	SubtleColor  = lipgloss.Color("#666666")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// LevelStyle picks the style for a budget level.
func LevelStyle(level core.BudgetLevel) lipgloss.Style {
	switch level {
	case core.BudgetExceeded:
		return ErrorStyle
	case core.BudgetWarning:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// ProgressBar renders percent (clamped to 0..100) as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}
	percent = max(0, min(percent, 100))
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
