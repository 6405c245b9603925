// Package themes holds the color schemes of the interactive dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme is a full set of dashboard styles derived from one palette.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Card          lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Income        lipgloss.Color
	Expense       lipgloss.Color
}

func build(primary, muted, border, fg, income, expense, warning, info string) Theme {
	return Theme{
		Primary: lipgloss.Color(primary),
		Muted:   lipgloss.Color(muted),
		Border:  lipgloss.Color(border),
		Income:  lipgloss.Color(income),
		Expense: lipgloss.Color(expense),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(primary)).
			Foreground(lipgloss.Color(fg)).
			Bold(true).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(income)).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(expense)).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(warning)).Bold(true),
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(info)).Bold(true),
	}
}

// Default is the default theme.
var Default = build("#3b82f6", "#737373", "#404040", "#fafafa", "#22c55e", "#ef4444", "#f59e0b", "#06b6d4")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("#cba6f7", "#6c7086", "#45475a", "#cdd6f4", "#a6e3a1", "#f38ba8", "#f9e2af", "#89dceb")

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
