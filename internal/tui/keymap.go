package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds dashboard actions to keys.
type KeyMap struct {
	PrevYear  key.Binding
	NextYear  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Clear     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap uses arrows and vim keys for movement.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevYear: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous year"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next year"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next month"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "backspace"),
			key.WithHelp("c", "clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevYear, k.NextYear, k.NextMonth, k.Clear, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevYear, k.NextYear},
		{k.PrevMonth, k.NextMonth},
		{k.Clear, k.Refresh},
		{k.Help, k.Quit},
	}
}
