// Package dateutils provides date parsing for statement fields and the
// calendar helpers used by duplicate detection and reconciliation.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts observed across bank exports, most common first. Day-first formats
// take precedence over US ordering.
var statementLayouts = []string{
	"02.01.2006",
	"02.01.06",
	"2006-01-02",
	"02/01/2006",
	"2006.01.02",
	"2.1.2006",
	"2006-01-02 15:04:05",
}

// ParseDate parses a statement date string, ignoring any time component.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range statementLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// WithinDays reports whether the dates are at most n days apart.
func WithinDays(a, b time.Time, n int) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= time.Duration(n)*24*time.Hour
}

// DaysApart returns the absolute distance between two dates in days.
func DaysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
