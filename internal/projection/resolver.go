package projection

import (
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// Resolver answers per-month trigger questions against one record set with
// its origin pinned to asOf.
type Resolver struct {
	data  *domain.FinancialData
	asOf  time.Time
	index EventIndex
}

// NewResolver builds a resolver. The index must have been built from the same
// records and asOf; YearlyCount reads it instead of recounting.
func NewResolver(data *domain.FinancialData, asOf time.Time, index EventIndex) *Resolver {
	if data == nil {
		data = &domain.FinancialData{}
	}
	return &Resolver{data: data, asOf: asOf, index: index}
}

// Target returns the first day of the calendar month at offset.
func (r *Resolver) Target(month int) time.Time {
	return calendar.AddMonths(r.asOf, month)
}

// YearMonth returns the "YYYY-MM" key of the calendar month at offset.
func (r *Resolver) YearMonth(month int) string {
	return calendar.TargetYearMonth(r.asOf, month)
}

// VariableExpenses returns the variable expenses firing in month.
func (r *Resolver) VariableExpenses(month int) []domain.Expense {
	ym := r.YearMonth(month)
	var out []domain.Expense
	for i := range r.data.Expenses {
		if r.data.Expenses[i].VariableFiresIn(month, ym) {
			out = append(out, r.data.Expenses[i])
		}
	}
	return out
}

// RecurringExpenses returns the active recurring expenses (monthly and
// yearly) firing in month.
func (r *Resolver) RecurringExpenses(month int) []domain.Expense {
	target := r.Target(month)
	var out []domain.Expense
	for i := range r.data.Expenses {
		if r.data.Expenses[i].RecurringFiresIn(target) {
			out = append(out, r.data.Expenses[i])
		}
	}
	return out
}

// ScheduledPassive returns the schedule-gated passive income entries active
// in month. Always-on entries are not part of this answer.
func (r *Resolver) ScheduledPassive(month int) []domain.PassiveIncomeEntry {
	ym := r.YearMonth(month)
	var out []domain.PassiveIncomeEntry
	for i := range r.data.PassiveIncome {
		if r.data.PassiveIncome[i].ActiveIn(ym) {
			out = append(out, r.data.PassiveIncome[i])
		}
	}
	return out
}

// YearlyCount is the number of yearly recurring expenses landing in month.
func (r *Resolver) YearlyCount(month int) int {
	return r.index.At(month).YearlyCount
}

// MonthDetail is the tooltip view of a single projected month.
type MonthDetail struct {
	Month            int         `json:"month"`
	YearMonth        string      `json:"yearMonth"`
	Marker           MarkerEntry `json:"marker"`
	VariableExpenses []string    `json:"variableExpenses"`
	ScheduledPassive []string    `json:"scheduledPassive"`
	YearlyCount      int         `json:"yearlyCount"`
}

// Detail collects everything that resolves in month.
func (r *Resolver) Detail(month int) MonthDetail {
	d := MonthDetail{
		Month:            month,
		YearMonth:        r.YearMonth(month),
		Marker:           r.index.At(month),
		VariableExpenses: []string{},
		ScheduledPassive: []string{},
		YearlyCount:      r.YearlyCount(month),
	}
	for _, e := range r.VariableExpenses(month) {
		d.VariableExpenses = append(d.VariableExpenses, domain.CoalesceStr(e.Name, e.ID))
	}
	for _, p := range r.ScheduledPassive(month) {
		d.ScheduledPassive = append(d.ScheduledPassive, p.Label())
	}
	return d
}
