package domain

import "github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"

// ScheduleWindow bounds the months in which a record is considered active.
// Both bounds are "YYYY-MM" keys and are inclusive; an empty EndDate is
// unbounded.
type ScheduleWindow struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// IsZero reports whether no bound is set.
func (w ScheduleWindow) IsZero() bool {
	return w.StartDate == "" && w.EndDate == ""
}

// Contains reports whether the "YYYY-MM" key ym lies inside the window.
// A malformed bound makes the window match nothing.
func (w ScheduleWindow) Contains(ym string) bool {
	start, end := "", ""
	if w.StartDate != "" {
		s, err := calendar.NormalizeYearMonth(w.StartDate)
		if err != nil {
			return false
		}
		start = s
	}
	if w.EndDate != "" {
		e, err := calendar.NormalizeYearMonth(w.EndDate)
		if err != nil {
			return false
		}
		end = e
	}
	return calendar.InWindow(ym, start, end)
}
