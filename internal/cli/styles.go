// Package cli holds the terminal presentation shared by the commands:
// lipgloss styles, message formatting and interactive prompts.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/cashflow/internal/model"
)

// Palette.
var (
	PrimaryColor = lipgloss.Color("#3B82F6")
	IncomeColor  = lipgloss.Color("#22C55E")
	PendingColor = lipgloss.Color("#F59E0B")
	ExpenseColor = lipgloss.Color("#EF4444")
	InfoColor    = lipgloss.Color("#06B6D4")
	MutedColor   = lipgloss.Color("#6B7280")
	BorderColor  = lipgloss.Color("#333333")
)

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(IncomeColor)
	expenseStyle = lipgloss.NewStyle().Foreground(ExpenseColor)
	pendingStyle = lipgloss.NewStyle().Foreground(PendingColor)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	promptStyle  = titleStyle
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// InfoStyle renders hints such as empty-state messages.
	InfoStyle = lipgloss.NewStyle().Foreground(InfoColor)
	// SubtleStyle renders secondary labels.
	SubtleStyle = lipgloss.NewStyle().Foreground(MutedColor)
)

// Section icons.
const (
	WalletIcon   = "💰"
	ChartIcon    = "📊"
	CalendarIcon = "📅"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess renders a confirmation of a completed change.
func FormatSuccess(message string) string { return withIcon(incomeStyle, "✓", message) }

// FormatError renders a failure reported to the user.
func FormatError(message string) string { return withIcon(expenseStyle, "✗", message) }

// FormatWarning renders a warning.
func FormatWarning(message string) string { return withIcon(pendingStyle, "⚠️", message) }

// FormatInfo renders a neutral notice.
func FormatInfo(message string) string { return withIcon(InfoStyle, "ℹ️", message) }

// FormatTitle renders a command heading.
func FormatTitle(title string) string {
	return titleStyle.MarginBottom(1).Render(title)
}

// FormatPrompt renders the question part of an interactive prompt.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox draws content in a rounded box under a bold title.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}

// TypeStyle colors amounts: green for income, red for expenses.
func TypeStyle(t model.TransactionType) lipgloss.Style {
	if t == model.TransactionTypeIncome {
		return incomeStyle
	}
	return expenseStyle
}

// StatusStyle colors a deadline by status.
func StatusStyle(s model.DeadlineStatus) lipgloss.Style {
	switch s {
	case model.DeadlineStatusOverdue:
		return expenseStyle
	case model.DeadlineStatusPaid:
		return incomeStyle
	default:
		return pendingStyle
	}
}

// Swatch renders a dot in the given hex color, or a blank when there is none.
func Swatch(hex string) string {
	if hex == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
