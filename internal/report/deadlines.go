// Package report derives deadlines, summaries, breakdowns and time series
// from a snapshot of transactions. Every function is pure: the same inputs
// always give the same outputs, and "today" is always passed in.
package report

import (
	"sort"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
)

// Deadlines projects every transaction with a due date into a deadline.
// Order follows the input transactions.
func Deadlines(transactions []model.Transaction, today model.Date) []model.Deadline {
	deadlines := make([]model.Deadline, 0, len(transactions))
	for _, t := range transactions {
		if !t.HasDueDate() {
			continue
		}
		deadlines = append(deadlines, model.Deadline{
			ID:            t.ID,
			TransactionID: t.ID,
			Title:         t.Description,
			Amount:        t.Amount,
			DueDate:       *t.DueDate,
			Category:      t.Category,
			ExpenseType:   t.ExpenseType,
			Type:          t.Type,
			Status:        DeadlineStatus(*t.DueDate, today),
			CreatedAt:     t.CreatedAt,
		})
	}
	return deadlines
}

// DeadlineStatus is overdue when the due day has passed and pending otherwise.
func DeadlineStatus(due, today model.Date) model.DeadlineStatus {
	if due.Before(today) {
		return model.DeadlineStatusOverdue
	}
	return model.DeadlineStatusPending
}

// FindDeadline returns the deadline with the given id.
func FindDeadline(deadlines []model.Deadline, id string) (model.Deadline, bool) {
	for _, d := range deadlines {
		if d.ID == id {
			return d, true
		}
	}
	return model.Deadline{}, false
}

// DeadlinesInMonth returns the deadlines due in the given month, earliest first.
func DeadlinesInMonth(deadlines []model.Deadline, year int, month time.Month) []model.Deadline {
	var result []model.Deadline
	for _, d := range deadlines {
		if d.DueDate.Year() == year && d.DueDate.Month() == month {
			result = append(result, d)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result
}

// DeadlineStats counts deadlines for the deadlines view. Deadlines due today
// count as pending here, and dueSoon covers the next seven days.
func DeadlineStats(deadlines []model.Deadline, today model.Date) model.DeadlineStats {
	stats := model.DeadlineStats{Total: len(deadlines)}
	for _, d := range deadlines {
		days := d.DaysUntil(today)
		if days < 0 {
			stats.Overdue++
		} else {
			stats.Pending++
		}
		if days == 0 {
			stats.DueToday++
		}
		if days > 0 && days <= 7 {
			stats.DueSoon++
		}
	}
	return stats
}
