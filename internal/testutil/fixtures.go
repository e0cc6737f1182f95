package testutil

import (
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dec is decimal.NewFromInt, short for table-heavy tests.
func Dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Expense options
type ExpenseOption func(*domain.Expense)

func WithExpenseAmount(v int64) ExpenseOption {
	return func(e *domain.Expense) {
		e.Amount = Dec(v)
	}
}

func WithExpenseStatus(s domain.ExpenseStatus) ExpenseOption {
	return func(e *domain.Expense) {
		e.Status = s
	}
}

// Variable turns the expense into a one-off on date ("" for the legacy rule).
func Variable(date string) ExpenseOption {
	return func(e *domain.Expense) {
		e.Type = domain.ExpenseVariable
		e.Frequency = ""
		e.Day = 0
		e.SpecificDate = date
	}
}

func Yearly(triggerMonth int) ExpenseOption {
	return func(e *domain.Expense) {
		e.Frequency = domain.FrequencyYearly
		e.TriggerMonth = triggerMonth
	}
}

func WithSpecificDate(date string) ExpenseOption {
	return func(e *domain.Expense) {
		e.SpecificDate = date
	}
}

func WithExpenseWindow(start, end string) ExpenseOption {
	return func(e *domain.Expense) {
		e.UseSchedule = true
		e.StartDate = start
		e.EndDate = end
	}
}

// NewTestExpense returns an active monthly recurring expense of 100.
func NewTestExpense(name string, opts ...ExpenseOption) *domain.Expense {
	e := &domain.Expense{
		ID:        uuid.New().String(),
		Name:      name,
		Amount:    Dec(100),
		Category:  "test",
		Type:      domain.ExpenseRecurring,
		Status:    domain.ExpenseActive,
		Frequency: domain.FrequencyMonthly,
		Day:       1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Illiquid asset options
type IlliquidOption func(*domain.IlliquidAsset)

func WithAssetValue(v int64) IlliquidOption {
	return func(a *domain.IlliquidAsset) {
		a.Value = Dec(v)
	}
}

// ScheduledFor puts the asset in the scheduled state.
func ScheduledFor(date string, value int64) IlliquidOption {
	return func(a *domain.IlliquidAsset) {
		v := Dec(value)
		a.IsScheduled = true
		a.IsActive = false
		a.ScheduledDate = date
		a.ScheduledValue = &v
	}
}

func TriggeredOn(date string) IlliquidOption {
	return func(a *domain.IlliquidAsset) {
		a.IsTriggered = true
		a.IsActive = true
		a.TriggeredDate = date
	}
}

// NewTestIlliquidAsset returns an active, unscheduled asset worth 0.
func NewTestIlliquidAsset(name string, opts ...IlliquidOption) *domain.IlliquidAsset {
	a := &domain.IlliquidAsset{
		ID:       uuid.New().String(),
		Name:     name,
		Value:    decimal.Zero,
		IsActive: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Passive income options
type PassiveOption func(*domain.PassiveIncomeEntry)

func WithPassiveWindow(start, end string) PassiveOption {
	return func(p *domain.PassiveIncomeEntry) {
		p.UseSchedule = true
		p.Schedule = domain.ScheduleWindow{StartDate: start, EndDate: end}
	}
}

func WithPassiveStatus(s domain.IncomeStatus) PassiveOption {
	return func(p *domain.PassiveIncomeEntry) {
		p.Status = s
	}
}

func Compounding(apy int64) PassiveOption {
	return func(p *domain.PassiveIncomeEntry) {
		p.AutoCompound = true
		p.APY = Dec(apy)
	}
}

func NewTestPassiveIncome(source string, amount int64, opts ...PassiveOption) *domain.PassiveIncomeEntry {
	p := &domain.PassiveIncomeEntry{
		ID:     uuid.New().String(),
		Source: source,
		Amount: Dec(amount),
		Status: domain.IncomeActive,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestActiveIncome(source string, amount int64) *domain.ActiveIncomeEntry {
	return &domain.ActiveIncomeEntry{
		ID:     uuid.New().String(),
		Source: source,
		Amount: Dec(amount),
		Status: domain.IncomeActive,
	}
}

func NewTestLiquidAsset(name string, value int64) *domain.LiquidAsset {
	return &domain.LiquidAsset{
		ID:       uuid.New().String(),
		Name:     name,
		Value:    Dec(value),
		IsActive: true,
		APY:      decimal.Zero,
	}
}

// NewTestFinancialData covers every collection: salary 5000, rent 1000,
// savings 10000, one always-on passive entry and one scheduled house.
func NewTestFinancialData() *domain.FinancialData {
	return &domain.FinancialData{
		ActiveIncome:   []domain.ActiveIncomeEntry{*NewTestActiveIncome("Salary", 5000)},
		PassiveIncome:  []domain.PassiveIncomeEntry{*NewTestPassiveIncome("Dividends", 40)},
		Expenses:       []domain.Expense{*NewTestExpense("Rent", WithExpenseAmount(1000))},
		LiquidAssets:   []domain.LiquidAsset{*NewTestLiquidAsset("Savings", 10000)},
		IlliquidAssets: []domain.IlliquidAsset{*NewTestIlliquidAsset("House", ScheduledFor("2025-06-01", 250000))},
	}
}
