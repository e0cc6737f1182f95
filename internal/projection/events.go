package projection

import (
	"sort"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// MarkerEntry lists the schedule boundaries and yearly triggers landing in one
// projected month. Chart annotations and tooltips both read these entries.
type MarkerEntry struct {
	Month       int      `json:"month"`
	Starts      []string `json:"starts"`
	Ends        []string `json:"ends"`
	YearlyCount int      `json:"yearlyCount"`
}

// IsEmpty reports whether the entry carries no event.
func (m MarkerEntry) IsEmpty() bool {
	return len(m.Starts) == 0 && len(m.Ends) == 0 && m.YearlyCount == 0
}

// EventIndex is a sparse month-offset -> MarkerEntry map. Months without any
// event are absent; At returns an empty entry for them.
type EventIndex struct {
	entries map[int]*MarkerEntry
}

// At returns the entry for month, or an empty entry if nothing happens then.
func (x EventIndex) At(month int) MarkerEntry {
	if e, ok := x.entries[month]; ok {
		return *e
	}
	return MarkerEntry{Month: month, Starts: []string{}, Ends: []string{}}
}

// Has reports whether month carries at least one event.
func (x EventIndex) Has(month int) bool {
	_, ok := x.entries[month]
	return ok
}

// Len is the number of months with events.
func (x EventIndex) Len() int {
	return len(x.entries)
}

// Entries returns all entries ordered by month.
func (x EventIndex) Entries() []MarkerEntry {
	out := make([]MarkerEntry, 0, len(x.entries))
	for _, e := range x.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func (x *EventIndex) entry(month int) *MarkerEntry {
	if x.entries == nil {
		x.entries = make(map[int]*MarkerEntry)
	}
	e, ok := x.entries[month]
	if !ok {
		e = &MarkerEntry{Month: month, Starts: []string{}, Ends: []string{}}
		x.entries[month] = e
	}
	return e
}

// BuildEventIndex scans the records once and indexes, for months 1..maxMonth
// relative to asOf, which passive-income schedules start or end and how many
// yearly recurring expenses trigger. Month 0 is the unprojected baseline and
// is never marked.
func BuildEventIndex(passive []domain.PassiveIncomeEntry, expenses []domain.Expense, asOf time.Time, maxMonth int) EventIndex {
	var idx EventIndex

	inRange := func(offset int) bool { return offset >= 1 && offset <= maxMonth }

	for i := range passive {
		p := &passive[i]
		if !p.UseSchedule {
			continue
		}
		if p.Schedule.StartDate != "" {
			if start, err := calendar.ParseYearMonth(p.Schedule.StartDate); err == nil {
				if off := calendar.MonthOffset(asOf, start); inRange(off) {
					e := idx.entry(off)
					e.Starts = append(e.Starts, p.Label())
				}
			}
		}
		if p.Schedule.EndDate != "" {
			if end, err := calendar.ParseYearMonth(p.Schedule.EndDate); err == nil {
				if off := calendar.MonthOffset(asOf, end); inRange(off) {
					e := idx.entry(off)
					e.Ends = append(e.Ends, p.Label())
				}
			}
		}
	}

	var yearly []*domain.Expense
	for i := range expenses {
		if expenses[i].IsYearlyRecurring() {
			yearly = append(yearly, &expenses[i])
		}
	}
	if len(yearly) == 0 {
		return idx
	}
	for m := 1; m <= maxMonth; m++ {
		target := calendar.AddMonths(asOf, m)
		count := 0
		for _, e := range yearly {
			if e.RecurringFiresIn(target) {
				count++
			}
		}
		if count > 0 {
			idx.entry(m).YearlyCount = count
		}
	}
	return idx
}
