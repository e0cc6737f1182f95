package domain

import (
	"errors"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
)

var ErrAssetLinkedElsewhere = errors.New("asset already linked to another expense")

// LinkedScheduleDate is the date a linked asset should activate on, derived
// from the expense: its SpecificDate, else the end of its schedule window,
// else the start. Month bounds resolve to the first day of the month. Returns
// "" when the expense carries no usable date.
func LinkedScheduleDate(e *Expense) string {
	if e.SpecificDate != "" {
		if _, err := calendar.ParseDate(e.SpecificDate); err == nil {
			return e.SpecificDate
		}
	}
	for _, ym := range []string{e.EndDate, e.StartDate} {
		if ym == "" {
			continue
		}
		if d, err := calendar.FirstOfMonth(ym); err == nil {
			return d
		}
	}
	return ""
}

// LinkExpense binds e and a to each other. When the expense has a
// SpecificDate the asset is seeded as scheduled for that date with the
// expense amount as its value.
func LinkExpense(e *Expense, a *IlliquidAsset) error {
	if a.LinkedExpenseID != "" && a.LinkedExpenseID != e.ID {
		return fmt.Errorf("linking asset %s: %w", a.ID, ErrAssetLinkedElsewhere)
	}
	e.LinkedIlliquidAssetID = a.ID
	a.LinkedExpenseID = e.ID

	if e.SpecificDate == "" || a.IsTriggered {
		return nil
	}
	return a.Schedule(e.SpecificDate, e.Amount)
}

// PropagateSchedule copies the expense's current date onto its linked asset.
// It reports whether the asset changed. Triggered assets are left alone.
func PropagateSchedule(e *Expense, a *IlliquidAsset) bool {
	if a.IsTriggered || a.LinkedExpenseID != e.ID {
		return false
	}
	date := LinkedScheduleDate(e)
	if date == "" || (a.IsScheduled && a.ScheduledDate == date) {
		return false
	}
	if a.IsScheduled {
		a.ScheduledDate = date
		return true
	}
	return a.Schedule(date, e.Amount) == nil
}

// UnlinkExpense clears the link on both sides. A still-dormant asset drops
// back to unscheduled.
func UnlinkExpense(e *Expense, a *IlliquidAsset) {
	e.LinkedIlliquidAssetID = ""
	if a == nil {
		return
	}
	if a.LinkedExpenseID == e.ID {
		a.LinkedExpenseID = ""
		a.Unschedule()
	}
}

// AlignLinkedSchedules moves every scheduled, untriggered linked asset onto
// its expense's date and returns how many assets changed.
func (d *FinancialData) AlignLinkedSchedules() int {
	changed := 0
	for i := range d.Expenses {
		e := &d.Expenses[i]
		if e.LinkedIlliquidAssetID == "" {
			continue
		}
		a := d.FindIlliquidAsset(e.LinkedIlliquidAssetID)
		if a == nil || !a.IsScheduled {
			continue
		}
		if PropagateSchedule(e, a) {
			changed++
		}
	}
	return changed
}
