package domain

import (
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Type     ExpenseType     `json:"type"`
	Status   ExpenseStatus   `json:"status"`

	// Recurrence
	Frequency    Frequency `json:"frequency,omitempty"`
	Day          int       `json:"day,omitempty"`
	TriggerMonth int       `json:"triggerMonth,omitempty"`

	// One-off date for variable expenses.
	SpecificDate string `json:"specificDate,omitempty"`

	UseSchedule bool   `json:"useSchedule,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`

	LinkedIlliquidAssetID string `json:"linkedIlliquidAssetId,omitempty"`
}

func (e *Expense) IsActive() bool {
	return e.Status == ExpenseActive
}

func (e *Expense) IsRecurring() bool {
	return e.Type == ExpenseRecurring
}

func (e *Expense) IsVariable() bool {
	return e.Type == ExpenseVariable
}

// EffectiveFrequency defaults unset recurrence to monthly.
func (e *Expense) EffectiveFrequency() Frequency {
	if e.Frequency == "" {
		return FrequencyMonthly
	}
	return e.Frequency
}

// IsYearlyRecurring reports whether the expense is an active yearly rule.
func (e *Expense) IsYearlyRecurring() bool {
	return e.IsActive() && e.IsRecurring() && e.EffectiveFrequency() == FrequencyYearly
}

// Window returns the expense's own schedule window, or the zero window when
// scheduling is off.
func (e *Expense) Window() ScheduleWindow {
	if !e.UseSchedule {
		return ScheduleWindow{}
	}
	return ScheduleWindow{StartDate: e.StartDate, EndDate: e.EndDate}
}

// RecurringFiresIn reports whether an active recurring expense fires in the
// calendar month of target. Monthly rules fire every month of their window;
// yearly rules fire only in their clamped trigger month.
func (e *Expense) RecurringFiresIn(target time.Time) bool {
	if !e.IsActive() || !e.IsRecurring() {
		return false
	}
	if !e.Window().Contains(calendar.YearMonthKey(target)) {
		return false
	}
	if e.EffectiveFrequency() == FrequencyYearly {
		return int(target.Month()) == calendar.ClampMonth(e.TriggerMonth)
	}
	return true
}

// VariableFiresIn reports whether an active variable expense fires in
// projection month offset whose calendar month is ym.
//
// Without a SpecificDate the expense fires in month 1 only. That rule is kept
// for records created before specific dates existed and is not meant as the
// general behaviour of undated expenses.
func (e *Expense) VariableFiresIn(offset int, ym string) bool {
	if !e.IsActive() || !e.IsVariable() {
		return false
	}
	if e.SpecificDate == "" {
		return offset == 1
	}
	d, err := calendar.ParseDate(e.SpecificDate)
	if err != nil {
		return false
	}
	return calendar.CompareYearMonth(calendar.YearMonthKey(d), ym) == 0
}
