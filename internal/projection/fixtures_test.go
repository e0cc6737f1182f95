package projection

import (
	"testing"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// testAsOf pins month 0 to November 2024, so month 2 is January 2025.
var testAsOf = time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		append([]any{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func salary(amount int64) domain.ActiveIncomeEntry {
	return domain.ActiveIncomeEntry{ID: "salary", Source: "Salary", Amount: d(amount), Status: domain.IncomeActive}
}

func monthlyExpense(id string, amount int64) domain.Expense {
	return domain.Expense{
		ID: id, Name: id, Amount: d(amount), Type: domain.ExpenseRecurring,
		Status: domain.ExpenseActive, Frequency: domain.FrequencyMonthly, Day: 1,
	}
}

func yearlyExpense(id string, amount int64, triggerMonth int) domain.Expense {
	return domain.Expense{
		ID: id, Name: id, Amount: d(amount), Type: domain.ExpenseRecurring,
		Status: domain.ExpenseActive, Frequency: domain.FrequencyYearly, TriggerMonth: triggerMonth,
	}
}

func variableExpense(id string, amount int64, specificDate string) domain.Expense {
	return domain.Expense{
		ID: id, Name: id, Amount: d(amount), Type: domain.ExpenseVariable,
		Status: domain.ExpenseActive, SpecificDate: specificDate,
	}
}

func scheduledPassive(source string, amount int64, start, end string) domain.PassiveIncomeEntry {
	return domain.PassiveIncomeEntry{
		ID: source, Source: source, Amount: d(amount), Status: domain.IncomeActive,
		UseSchedule: true, Schedule: domain.ScheduleWindow{StartDate: start, EndDate: end},
	}
}
