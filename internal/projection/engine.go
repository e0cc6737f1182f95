// Package projection turns the financial-data aggregate into a month-by-month
// cash-flow projection and the marker index the chart annotates it with.
//
// Everything here is pure: the origin month is passed in as asOf and nothing
// reads the wall clock, so identical inputs give identical output.
package projection

import (
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxHorizon is the longest projection accepted from callers, fifty years.
const MaxHorizon = 600

// monthsPerYearPct converts an annual percentage into a monthly fraction.
var monthsPerYearPct = decimal.NewFromInt(1200)

// MonthlySnapshot is the projected state at one month offset. Month 0 is the
// current, unprojected state.
type MonthlySnapshot struct {
	Month     int    `json:"month"`
	YearMonth string `json:"yearMonth"`

	Balance          decimal.Decimal `json:"balance"`
	NetChange        decimal.Decimal `json:"netChange"`
	CumulativeGrowth decimal.Decimal `json:"cumulativeGrowth"`

	ActiveIncome      decimal.Decimal `json:"activeIncome"`
	PassiveIncome     decimal.Decimal `json:"passiveIncome"`
	CompoundedPassive decimal.Decimal `json:"compoundedPassive"`
	CompoundedAssets  decimal.Decimal `json:"compoundedAssets"`
	DividendIncome    decimal.Decimal `json:"dividendIncome"`

	RecurringExpenses decimal.Decimal `json:"recurringExpenses"`
	VariableExpenses  decimal.Decimal `json:"variableExpenses"`

	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
}

// monthlyYield returns value * pct / 100 / 12.
func monthlyYield(value, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() || value.IsZero() {
		return decimal.Zero
	}
	return value.Mul(pct).Div(monthsPerYearPct)
}

// Markers builds the chart marker index for the horizon.
func Markers(data *domain.FinancialData, horizon int, asOf time.Time) EventIndex {
	if data == nil {
		return EventIndex{}
	}
	return BuildEventIndex(data.PassiveIncome, data.Expenses, asOf, horizon)
}

// Project walks months 0..horizon from asOf and returns one snapshot per
// month. A non-positive horizon yields only month 0.
func Project(data *domain.FinancialData, horizon int, asOf time.Time) []MonthlySnapshot {
	if data == nil {
		data = &domain.FinancialData{}
	}
	if horizon < 0 {
		horizon = 0
	}
	r := NewResolver(data, asOf, Markers(data, horizon, asOf))

	// Inputs that do not vary by month.
	balance0 := decimal.Zero
	compoundedAssets := decimal.Zero
	dividends := decimal.Zero
	for _, a := range data.LiquidAssets {
		if !a.IsActive {
			continue
		}
		balance0 = balance0.Add(a.Value)
		dividends = dividends.Add(monthlyYield(a.Value, a.DividendYield))
		if a.AutoCompound {
			compoundedAssets = compoundedAssets.Add(monthlyYield(a.Value, a.APY))
		}
	}
	activeIncome := decimal.Zero
	for _, a := range data.ActiveIncome {
		if a.IsActive() {
			activeIncome = activeIncome.Add(a.Amount)
		}
	}
	alwaysOn := decimal.Zero
	for _, p := range data.PassiveIncome {
		if p.AlwaysOn() {
			alwaysOn = alwaysOn.Add(p.Amount)
		}
	}

	// Reinvested payout months per auto-compounding passive entry, counted
	// over projected months only.
	paidMonths := make([]int64, len(data.PassiveIncome))

	out := make([]MonthlySnapshot, 0, horizon+1)
	balance := balance0
	for m := 0; m <= horizon; m++ {
		ym := r.YearMonth(m)
		s := MonthlySnapshot{
			Month:             m,
			YearMonth:         ym,
			ActiveIncome:      activeIncome,
			DividendIncome:    decimal.Zero,
			CompoundedPassive: decimal.Zero,
			CompoundedAssets:  decimal.Zero,
		}

		passive := alwaysOn
		for _, p := range r.ScheduledPassive(m) {
			passive = passive.Add(p.Amount)
		}
		s.PassiveIncome = passive

		if m > 0 {
			s.CompoundedAssets = compoundedAssets
			s.DividendIncome = dividends
			cp := decimal.Zero
			for i := range data.PassiveIncome {
				p := &data.PassiveIncome[i]
				if !p.AutoCompound {
					continue
				}
				principal := p.Amount.Mul(decimal.NewFromInt(paidMonths[i]))
				cp = cp.Add(monthlyYield(principal, p.APY))
				if p.PaysIn(ym) {
					paidMonths[i]++
				}
			}
			s.CompoundedPassive = cp
		}

		recurring := decimal.Zero
		for _, e := range r.RecurringExpenses(m) {
			recurring = recurring.Add(e.Amount)
		}
		variable := decimal.Zero
		for _, e := range r.VariableExpenses(m) {
			variable = variable.Add(e.Amount)
		}
		s.RecurringExpenses = recurring
		s.VariableExpenses = variable

		s.MonthlyIncome = s.ActiveIncome.Add(s.PassiveIncome).Add(s.CompoundedPassive).
			Add(s.CompoundedAssets).Add(s.DividendIncome)
		s.MonthlyExpenses = recurring.Add(variable)
		s.NetChange = s.MonthlyIncome.Sub(s.MonthlyExpenses)

		if m > 0 {
			balance = balance.Add(s.NetChange)
		}
		s.Balance = balance
		s.CumulativeGrowth = balance.Sub(balance0)
		out = append(out, s)
	}
	return out
}
