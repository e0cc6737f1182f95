package domain

import "github.com/shopspring/decimal"

// ActiveIncomeEntry is earned income (salary, contracting) that lands every month.
type ActiveIncomeEntry struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
	Status IncomeStatus    `json:"status"`
}

func (a *ActiveIncomeEntry) IsActive() bool {
	return a.Status == IncomeActive
}

// PassiveIncomeEntry is income that does not require work, optionally gated
// by a schedule window.
type PassiveIncomeEntry struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Status      IncomeStatus    `json:"status"`
	UseSchedule bool            `json:"useSchedule"`
	Schedule    ScheduleWindow  `json:"schedule"`

	// Reinvested payouts earn APY (percent per year) as simple monthly yield.
	AutoCompound bool            `json:"autoCompound,omitempty"`
	APY          decimal.Decimal `json:"apy"`
}

// Label is the text shown on chart markers for this entry.
func (p *PassiveIncomeEntry) Label() string {
	return CoalesceStr(p.Source, p.ID)
}

// AlwaysOn reports whether the entry contributes to every month without
// consulting a schedule.
func (p *PassiveIncomeEntry) AlwaysOn() bool {
	return !p.UseSchedule && p.Status == IncomeActive
}

// IsScheduled reports whether the entry is gated by a window with a start.
func (p *PassiveIncomeEntry) IsScheduled() bool {
	return p.UseSchedule && p.Schedule.StartDate != ""
}

// ActiveIn reports whether a schedule-gated entry pays out in the month ym.
// Unscheduled entries are never reported here. Inactive entries never pay;
// pending ones pay once their window opens.
func (p *PassiveIncomeEntry) ActiveIn(ym string) bool {
	if !p.IsScheduled() || p.Status == IncomeInactive {
		return false
	}
	return p.Schedule.Contains(ym)
}

// PaysIn reports whether the entry contributes anything in month ym, either
// always-on or through its schedule.
func (p *PassiveIncomeEntry) PaysIn(ym string) bool {
	return p.AlwaysOn() || p.ActiveIn(ym)
}
