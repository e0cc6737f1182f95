package projection

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomFinancialData(rng *rand.Rand) *domain.FinancialData {
	data := &domain.FinancialData{}
	statuses := []domain.IncomeStatus{domain.IncomeActive, domain.IncomeInactive, domain.IncomePending}
	ym := func() string { return calendar.TargetYearMonth(testAsOf, rng.Intn(30)-4) }

	for i := 0; i < rng.Intn(3)+1; i++ {
		data.ActiveIncome = append(data.ActiveIncome, domain.ActiveIncomeEntry{
			ID: fmt.Sprintf("a%d", i), Amount: d(int64(rng.Intn(6000))), Status: statuses[rng.Intn(3)],
		})
	}
	for i := 0; i < rng.Intn(4); i++ {
		p := domain.PassiveIncomeEntry{
			ID: fmt.Sprintf("p%d", i), Source: fmt.Sprintf("Passive %d", i),
			Amount: d(int64(rng.Intn(800))), Status: statuses[rng.Intn(3)],
			AutoCompound: rng.Intn(2) == 0, APY: d(int64(rng.Intn(10))),
		}
		if rng.Intn(2) == 0 {
			p.UseSchedule = true
			p.Schedule.StartDate = ym()
			if rng.Intn(2) == 0 {
				p.Schedule.EndDate = ym()
			}
		}
		data.PassiveIncome = append(data.PassiveIncome, p)
	}
	for i := 0; i < rng.Intn(6); i++ {
		e := domain.Expense{
			ID: fmt.Sprintf("e%d", i), Amount: d(int64(rng.Intn(2000))), Status: domain.ExpenseActive,
		}
		switch rng.Intn(3) {
		case 0:
			e.Type = domain.ExpenseRecurring
			e.Frequency = domain.FrequencyMonthly
		case 1:
			e.Type = domain.ExpenseRecurring
			e.Frequency = domain.FrequencyYearly
			e.TriggerMonth = rng.Intn(14)
		default:
			e.Type = domain.ExpenseVariable
			if rng.Intn(3) > 0 {
				e.SpecificDate = ym() + "-15"
			}
		}
		if rng.Intn(4) == 0 {
			e.Status = domain.ExpenseInactive
		}
		data.Expenses = append(data.Expenses, e)
	}
	for i := 0; i < rng.Intn(3); i++ {
		data.LiquidAssets = append(data.LiquidAssets, domain.LiquidAsset{
			ID: fmt.Sprintf("l%d", i), Value: d(int64(rng.Intn(20000))), IsActive: rng.Intn(4) > 0,
			AutoCompound: rng.Intn(2) == 0, APY: d(int64(rng.Intn(8))), DividendYield: d(int64(rng.Intn(4))),
		})
	}
	return data
}

func TestProjectProperty_BalanceAccounting(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		data := randomFinancialData(rng)
		horizon := rng.Intn(36)
		snaps := Project(data, horizon, testAsOf)
		require.Len(t, snaps, horizon+1, "iter=%d", iter)

		balance0 := snaps[0].Balance
		for m, s := range snaps {
			assert.Equal(t, m, s.Month)
			income := s.ActiveIncome.Add(s.PassiveIncome).Add(s.CompoundedPassive).Add(s.CompoundedAssets).Add(s.DividendIncome)
			assert.True(t, income.Equal(s.MonthlyIncome), "iter=%d month=%d income", iter, m)
			assert.True(t, s.MonthlyIncome.Sub(s.MonthlyExpenses).Equal(s.NetChange), "iter=%d month=%d net", iter, m)
			assert.True(t, s.Balance.Sub(balance0).Equal(s.CumulativeGrowth), "iter=%d month=%d growth", iter, m)
			if m == 0 {
				assert.True(t, s.CompoundedAssets.IsZero())
				assert.True(t, s.CompoundedPassive.IsZero())
				assert.True(t, s.DividendIncome.IsZero())
				continue
			}
			want := snaps[m-1].Balance.Add(s.NetChange)
			assert.True(t, want.Equal(s.Balance), "iter=%d month=%d balance", iter, m)
		}
	}
}

func TestProjectProperty_YearlyCountAgreesWithSums(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		data := randomFinancialData(rng)
		horizon := rng.Intn(36)
		idx := Markers(data, horizon, testAsOf)
		r := NewResolver(data, testAsOf, idx)

		for m := 1; m <= horizon; m++ {
			firing := 0
			for _, e := range r.RecurringExpenses(m) {
				if e.EffectiveFrequency() == domain.FrequencyYearly {
					firing++
				}
			}
			assert.Equal(t, firing, idx.At(m).YearlyCount, "iter=%d month=%d", iter, m)
		}
	}
}

func TestProjectProperty_VariableLandsAtMostOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		data := randomFinancialData(rng)
		r := NewResolver(data, testAsOf, Markers(data, 36, testAsOf))
		seen := map[string]int{}
		for m := 0; m <= 36; m++ {
			for _, e := range r.VariableExpenses(m) {
				seen[e.ID]++
			}
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "iter=%d expense=%s", iter, id)
		}
	}
}
