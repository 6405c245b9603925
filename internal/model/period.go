package model

import (
	"fmt"
	"time"
)

// Period is the year/month selection used to scope aggregate views.
// A zero Year or Month means "not selected"; the zero Period means all data.
type Period struct {
	Year  int
	Month time.Month
}

// AllTime returns the cleared selection.
func AllTime() Period {
	return Period{}
}

// WithYear selects a year. Month choices depend on the year, so the month is cleared.
func (p Period) WithYear(year int) Period {
	return Period{Year: year}
}

// WithMonth selects a month and keeps the selected year.
func (p Period) WithMonth(month time.Month) Period {
	p.Month = month
	return p
}

// HasYear reports whether a year is selected.
func (p Period) HasYear() bool {
	return p.Year != 0
}

// HasMonth reports whether a month is selected.
func (p Period) HasMonth() bool {
	return p.Month != 0
}

// IsAll reports whether no filter is selected.
func (p Period) IsAll() bool {
	return !p.HasYear() && !p.HasMonth()
}

// Contains reports whether d falls inside the selection.
func (p Period) Contains(d Date) bool {
	if p.HasYear() && d.Year() != p.Year {
		return false
	}
	if p.HasMonth() && d.Month() != p.Month {
		return false
	}
	return true
}

// Validate checks that a selected month is a real month.
func (p Period) Validate() error {
	if p.HasMonth() && (p.Month < time.January || p.Month > time.December) {
		return fmt.Errorf("invalid month %d", p.Month)
	}
	if p.Year < 0 {
		return fmt.Errorf("invalid year %d", p.Year)
	}
	return nil
}

// String renders the selection for display.
func (p Period) String() string {
	switch {
	case p.HasYear() && p.HasMonth():
		return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
	case p.HasYear():
		return fmt.Sprintf("%04d", p.Year)
	case p.HasMonth():
		return fmt.Sprintf("month %02d", int(p.Month))
	default:
		return "all"
	}
}
