package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

const (
	maxBreakdownRows = 6
	maxDeadlineRows  = 5
	barWidth         = 20
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.theme.Subtitle.Render("Loading ledger..."))
	}

	sections := []string{
		m.renderHeader(),
		m.renderSelector(),
		m.renderCards(),
	}

	if !m.dashboard.HasTransactions {
		sections = append(sections, m.theme.Subtitle.Render("No transactions yet. Add one with `cashflow transactions add`."))
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left, m.renderBreakdown(), m.renderDeadlines())
		right := m.renderEvolution()
		if m.width >= 110 {
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
		} else {
			sections = append(sections, left, right)
		}
	}

	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("Reload failed: "+m.lastError.Error()))
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("cashflow")
	period := m.theme.Subtitle.Render(" · " + m.format.Period(m.period))
	today := m.theme.Subtitle.Render("  today " + m.format.Date(m.config.Today()))
	return title + period + today
}

// renderSelector shows the year and month choices with the current ones highlighted.
func (m Model) renderSelector() string {
	years := make([]string, 0)
	for _, y := range m.yearOptions() {
		label := "all"
		if y != 0 {
			label = strconv.Itoa(y)
		}
		years = append(years, m.option(label, y == m.period.Year))
	}

	months := make([]string, 0)
	for _, mo := range m.monthOptions() {
		label := "all"
		if mo != 0 {
			name := []rune(m.format.MonthName(mo))
			if len(name) > 3 {
				name = name[:3]
			}
			label = string(name)
		}
		months = append(months, m.option(label, mo == m.period.Month))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render("Year  ")+strings.Join(years, " "),
		m.theme.Subtitle.Render("Month ")+strings.Join(months, " "),
	)
}

func (m Model) option(label string, selected bool) string {
	if selected {
		return m.theme.Selected.Render(label)
	}
	return m.theme.Normal.Padding(0, 1).Render(label)
}

func (m Model) renderCards() string {
	s := m.dashboard.Summary
	st := m.dashboard.Stats

	overall := m.card("Overall",
		m.line("Income", m.money(s.TotalIncome, m.theme.Income)),
		m.line("Expenses", m.money(s.TotalExpenses, m.theme.Expense)),
		m.line("Balance", m.balance(s.Balance)),
	)
	selected := m.card(m.format.Period(m.period),
		m.line("Income", m.money(st.Income, m.theme.Income)),
		m.line("Expenses", m.money(st.Expenses, m.theme.Expense)),
		m.line("Balance", m.balance(st.Balance)),
		m.line("Transactions", strconv.Itoa(st.TransactionCount)),
	)
	ds := m.dashboard.DeadlineStats
	deadlines := m.card("Deadlines",
		m.line("Pending", m.theme.StatusWarning.Render(strconv.Itoa(s.PendingDeadlines))),
		m.line("Overdue", m.theme.StatusError.Render(strconv.Itoa(s.OverdueDeadlines))),
		m.line("Due today", strconv.Itoa(ds.DueToday)),
		m.line("Next 7 days", strconv.Itoa(ds.DueSoon)),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, overall, selected, deadlines)
}

func (m Model) renderBreakdown() string {
	rows := m.dashboard.Categories
	if len(rows) == 0 {
		return m.card("Expenses by category", m.theme.Subtitle.Render("no expenses in this period"))
	}
	if len(rows) > maxBreakdownRows {
		rows = rows[:maxBreakdownRows]
	}

	largest := rows[0].Amount
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-16s %s %s",
			truncate(r.Name, 16),
			m.bar(r.Amount, largest, m.theme.Expense),
			m.format.Money(r.Amount)))
	}
	return m.card("Expenses by category", lines...)
}

func (m Model) renderDeadlines() string {
	today := m.config.Today()
	deadlines := append([]model.Deadline(nil), m.dashboard.Deadlines...)
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(deadlines[j].DueDate)
	})

	// Overdue first, then the nearest upcoming ones.
	var shown []model.Deadline
	for _, d := range deadlines {
		if d.Status == model.DeadlineStatusOverdue {
			shown = append(shown, d)
		}
	}
	for _, d := range deadlines {
		if d.Status != model.DeadlineStatusOverdue {
			shown = append(shown, d)
		}
	}
	if len(shown) > maxDeadlineRows {
		shown = shown[:maxDeadlineRows]
	}
	if len(shown) == 0 {
		return m.card("Upcoming deadlines", m.theme.Subtitle.Render("nothing due"))
	}

	lines := make([]string, 0, len(shown))
	for _, d := range shown {
		style := m.theme.StatusWarning
		if d.Status == model.DeadlineStatusOverdue {
			style = m.theme.StatusError
		}
		lines = append(lines, fmt.Sprintf("%s %-18s %s %s",
			m.format.Date(d.DueDate),
			truncate(d.Title, 18),
			m.format.Money(d.Amount),
			style.Render(m.format.DueIn(d.DaysUntil(today)))))
	}
	return m.card("Upcoming deadlines", lines...)
}

func (m Model) renderEvolution() string {
	title := "Monthly evolution"
	if m.period.HasYear() {
		title += " " + strconv.Itoa(m.period.Year)
	}

	largest := decimal.Zero
	for _, p := range m.dashboard.Evolution {
		largest = decimal.Max(largest, p.Income, p.Expenses)
	}

	lines := make([]string, 0, len(m.dashboard.Evolution))
	for _, p := range m.dashboard.Evolution {
		name := []rune(m.format.MonthName(p.Month))
		if len(name) > 3 {
			name = name[:3]
		}
		label := string(name)
		if p.Month == m.period.Month {
			label = m.theme.Bold.Render(label)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			label,
			m.bar(p.Income, largest, m.theme.Income),
			m.bar(p.Expenses, largest, m.theme.Expense)))
	}
	return m.card(title, lines...)
}

func (m Model) card(title string, lines ...string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{m.theme.Bold.Render(title)}, lines...)...)
	return m.theme.Card.Render(content)
}

func (m Model) line(label, value string) string {
	return fmt.Sprintf("%-13s %s", label, value)
}

func (m Model) money(d decimal.Decimal, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(m.format.Money(d))
}

func (m Model) balance(d decimal.Decimal) string {
	if d.IsNegative() {
		return m.money(d, m.theme.Expense)
	}
	return m.money(d, m.theme.Income)
}

// bar draws value as a share of largest.
func (m Model) bar(value, largest decimal.Decimal, color lipgloss.Color) string {
	filled := 0
	if largest.IsPositive() {
		filled = int(value.Div(largest).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	}
	if filled > barWidth {
		filled = barWidth
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("░", barWidth-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
