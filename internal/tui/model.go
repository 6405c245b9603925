// Package tui implements the interactive dashboard: a bubbletea program that
// holds the year/month selection and redraws the derived figures on change.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/report"
	"github.com/Veraticus/cashflow/internal/tui/themes"
)

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	source    Source
	lastError error
	format    *cli.Formatter
	config    Config
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	snapshot  model.Snapshot
	dashboard report.Dashboard
	period    model.Period
	width     int
	height    int
	ready     bool
	quitting  bool
}

// New creates the dashboard model reading from src.
func New(ctx context.Context, src Source, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		ctx:    ctx,
		source: src,
		config: cfg,
		theme:  cfg.Theme,
		format: cfg.Formatter,
		keymap: DefaultKeyMap(),
		help:   h,
		period: cfg.Period,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return loadSnapshot(m.source)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case snapshotLoadedMsg:
		m.snapshot = msg.snapshot
		m.lastError = nil
		m.ready = true
		m.refresh()

	case errorMsg:
		m.lastError = msg.err
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Refresh):
		return m, reloadSnapshot(m.ctx, m.source)
	case key.Matches(msg, m.keymap.PrevYear):
		m.SelectYear(m.stepYear(-1))
	case key.Matches(msg, m.keymap.NextYear):
		m.SelectYear(m.stepYear(1))
	case key.Matches(msg, m.keymap.PrevMonth):
		m.SelectMonth(m.stepMonth(-1))
	case key.Matches(msg, m.keymap.NextMonth):
		m.SelectMonth(m.stepMonth(1))
	case key.Matches(msg, m.keymap.Clear):
		m.ClearSelection()
	}
	return m, nil
}

// Period returns the current selection.
func (m Model) Period() model.Period {
	return m.period
}

// Dashboard returns the figures currently on screen.
func (m Model) Dashboard() report.Dashboard {
	return m.dashboard
}

// SelectYear selects a year, or every year when year is zero. The month
// selection is cleared because the available months depend on the year.
func (m *Model) SelectYear(year int) {
	m.period = m.period.WithYear(year)
	m.refresh()
}

// SelectMonth selects a month within the current year selection, or every
// month when month is zero.
func (m *Model) SelectMonth(month time.Month) {
	m.period = m.period.WithMonth(month)
	m.refresh()
}

// ClearSelection goes back to all data.
func (m *Model) ClearSelection() {
	m.period = model.AllTime()
	m.refresh()
}

func (m *Model) refresh() {
	m.dashboard = report.BuildDashboard(m.snapshot, m.period, m.config.Today())
}

// yearOptions lists the selectable years, oldest first, after "all" (zero).
func (m Model) yearOptions() []int {
	years := report.AvailableYears(m.snapshot.Transactions)
	options := make([]int, 0, len(years)+1)
	options = append(options, 0)
	for i := len(years) - 1; i >= 0; i-- {
		options = append(options, years[i])
	}
	return options
}

// monthOptions lists the selectable months after "all" (zero).
func (m Model) monthOptions() []time.Month {
	months := report.AvailableMonths(m.snapshot.Transactions, m.period.Year)
	return append([]time.Month{0}, months...)
}

func (m Model) stepYear(delta int) int {
	options := m.yearOptions()
	return options[step(indexOf(options, m.period.Year), delta, len(options))]
}

func (m Model) stepMonth(delta int) time.Month {
	options := m.monthOptions()
	return options[step(indexOf(options, m.period.Month), delta, len(options))]
}

// step moves an index by delta without leaving [0, n).
func step(i, delta, n int) int {
	i += delta
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}
