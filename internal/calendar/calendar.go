// Package calendar holds the month-granularity date arithmetic shared by the
// projection engine, the event index and the asset trigger sweep.
//
// Year-months are plain "YYYY-MM" strings and dates are "YYYY-MM-DD" strings.
// Ordering is lexicographic on the zero-padded form; CompareYearMonth is the
// only place that relies on it.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	// YearMonthLayout is the layout of schedule window bounds.
	YearMonthLayout = "2006-01"
	// DateLayout is the layout of specific and scheduled dates.
	DateLayout = "2006-01-02"
)

// MonthLabel is the human calendar month a projection offset maps to.
type MonthLabel struct {
	MonthName string
	YearShort string
	YearMonth string
}

// MonthOffset returns the whole-month difference between from and to,
// ignoring the day of month.
func MonthOffset(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// YearMonthKey formats t as a zero-padded "YYYY-MM" key.
func YearMonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// AddMonths returns the first day of the month n months after origin's month.
// Pinning to day 1 avoids time.AddDate normalizing Jan 31 + 1 month into March.
func AddMonths(origin time.Time, n int) time.Time {
	return time.Date(origin.Year(), origin.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// TargetYearMonth returns the "YYYY-MM" key of the month offset months after origin.
func TargetYearMonth(origin time.Time, offset int) string {
	return YearMonthKey(AddMonths(origin, offset))
}

// ActualDate maps a month offset from origin to a calendar label.
func ActualDate(origin time.Time, offset int) MonthLabel {
	t := AddMonths(origin, offset)
	return MonthLabel{
		MonthName: t.Month().String()[:3],
		YearShort: fmt.Sprintf("%02d", t.Year()%100),
		YearMonth: YearMonthKey(t),
	}
}

// CompareYearMonth compares two "YYYY-MM" keys, returning -1, 0 or 1.
func CompareYearMonth(a, b string) int {
	return strings.Compare(a, b)
}

// InWindow reports whether ym falls within [start, end]. An empty end is
// unbounded; an empty start is treated as "always started".
func InWindow(ym, start, end string) bool {
	if start != "" && CompareYearMonth(ym, start) < 0 {
		return false
	}
	if end != "" && CompareYearMonth(ym, end) > 0 {
		return false
	}
	return true
}

// ParseYearMonth parses a "YYYY-MM" key. A full "YYYY-MM-DD" date is accepted
// and truncated to its month.
func ParseYearMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == len(DateLayout) {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year-month %q: %w", s, err)
		}
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year-month %q want format %q: %w", s, YearMonthLayout, err)
	}
	return t, nil
}

// NormalizeYearMonth returns the canonical "YYYY-MM" key for s, or an error.
func NormalizeYearMonth(s string) (string, error) {
	t, err := ParseYearMonth(s)
	if err != nil {
		return "", err
	}
	return YearMonthKey(t), nil
}

// ParseDate parses a "YYYY-MM-DD" date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateLayout, err)
	}
	return t, nil
}

// DateKey formats t as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// FirstOfMonth turns a "YYYY-MM" key (or a full date) into the date of the
// first day of that month.
func FirstOfMonth(ym string) (string, error) {
	t, err := ParseYearMonth(ym)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}

// ClampMonth clamps m into 1..12.
func ClampMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 12 {
		return 12
	}
	return m
}
