package importer

import (
	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Convert transforms a validated ImportSchema into a FinancialData aggregate
// ready for persistence. Records without an id get a fresh UUID and one-sided
// expense/asset links are completed on the other side.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) *domain.FinancialData {
	data := &domain.FinancialData{
		ActiveIncome:   make([]domain.ActiveIncomeEntry, 0, len(schema.ActiveIncome)),
		PassiveIncome:  make([]domain.PassiveIncomeEntry, 0, len(schema.PassiveIncome)),
		Expenses:       make([]domain.Expense, 0, len(schema.Expenses)),
		LiquidAssets:   make([]domain.LiquidAsset, 0, len(schema.LiquidAssets)),
		IlliquidAssets: make([]domain.IlliquidAsset, 0, len(schema.IlliquidAssets)),
	}

	for _, e := range schema.ActiveIncome {
		data.ActiveIncome = append(data.ActiveIncome, domain.ActiveIncomeEntry{
			ID:     idOrNew(e.ID),
			Source: e.Source,
			Amount: e.Amount,
			Status: domain.IncomeStatus(domain.CoalesceStr(e.Status, string(domain.IncomeActive))),
		})
	}

	for _, e := range schema.PassiveIncome {
		entry := domain.PassiveIncomeEntry{
			ID:           idOrNew(e.ID),
			Source:       e.Source,
			Amount:       e.Amount,
			Status:       domain.IncomeStatus(domain.CoalesceStr(e.Status, string(domain.IncomeActive))),
			UseSchedule:  domain.BoolFromPtrWithDefault(false, e.UseSchedule),
			AutoCompound: domain.BoolFromPtrWithDefault(false, e.AutoCompound),
			APY:          domain.DecimalFromPtrWithDefault(decimal.Zero, e.APY),
		}
		if e.Schedule != nil {
			entry.Schedule = domain.ScheduleWindow{
				StartDate: monthKey(e.Schedule.StartDate),
				EndDate:   monthKey(e.Schedule.EndDate),
			}
		}
		data.PassiveIncome = append(data.PassiveIncome, entry)
	}

	for _, e := range schema.Expenses {
		data.Expenses = append(data.Expenses, domain.Expense{
			ID:                    idOrNew(e.ID),
			Name:                  e.Name,
			Amount:                e.Amount,
			Category:              e.Category,
			Type:                  domain.ExpenseType(domain.CoalesceStr(e.Type, string(domain.ExpenseRecurring))),
			Status:                domain.ExpenseStatus(domain.CoalesceStr(e.Status, string(domain.ExpenseActive))),
			Frequency:             domain.Frequency(e.Frequency),
			Day:                   domain.IntFromPtrWithDefault(0, e.Day),
			TriggerMonth:          domain.IntFromPtrWithDefault(0, e.TriggerMonth),
			SpecificDate:          derefStr(e.SpecificDate),
			UseSchedule:           domain.BoolFromPtrWithDefault(false, e.UseSchedule),
			StartDate:             monthKey(derefStr(e.StartDate)),
			EndDate:               monthKey(derefStr(e.EndDate)),
			LinkedIlliquidAssetID: derefStr(e.LinkedIlliquidAssetID),
		})
	}

	for _, a := range schema.LiquidAssets {
		data.LiquidAssets = append(data.LiquidAssets, domain.LiquidAsset{
			ID:            idOrNew(a.ID),
			Name:          a.Name,
			Value:         a.Value,
			IsActive:      domain.BoolFromPtrWithDefault(true, a.IsActive),
			AutoCompound:  domain.BoolFromPtrWithDefault(false, a.AutoCompound),
			APY:           domain.DecimalFromPtrWithDefault(decimal.Zero, a.APY),
			DividendYield: domain.DecimalFromPtrWithDefault(decimal.Zero, a.DividendYield),
		})
	}

	for _, a := range schema.IlliquidAssets {
		scheduled := domain.BoolFromPtrWithDefault(false, a.IsScheduled)
		triggered := domain.BoolFromPtrWithDefault(false, a.IsTriggered)
		asset := domain.IlliquidAsset{
			ID:              idOrNew(a.ID),
			Name:            a.Name,
			Value:           a.Value,
			IsActive:        domain.BoolFromPtrWithDefault(!scheduled || triggered, a.IsActive),
			IsScheduled:     scheduled,
			ScheduledDate:   derefStr(a.ScheduledDate),
			IsTriggered:     triggered,
			TriggeredDate:   derefStr(a.TriggeredDate),
			LinkedExpenseID: derefStr(a.LinkedExpenseID),
		}
		if a.ScheduledValue != nil {
			v := *a.ScheduledValue
			asset.ScheduledValue = &v
		}
		data.IlliquidAssets = append(data.IlliquidAssets, asset)
	}

	completeLinks(data)
	return data
}

func completeLinks(data *domain.FinancialData) {
	for i := range data.Expenses {
		e := &data.Expenses[i]
		if e.LinkedIlliquidAssetID == "" {
			continue
		}
		if a := data.FindIlliquidAsset(e.LinkedIlliquidAssetID); a != nil && a.LinkedExpenseID == "" {
			a.LinkedExpenseID = e.ID
		}
	}
	for i := range data.IlliquidAssets {
		a := &data.IlliquidAssets[i]
		if a.LinkedExpenseID == "" {
			continue
		}
		if e := data.FindExpense(a.LinkedExpenseID); e != nil && e.LinkedIlliquidAssetID == "" {
			e.LinkedIlliquidAssetID = a.ID
		}
	}
	data.AlignLinkedSchedules()
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// monthKey normalizes a validated month bound to "YYYY-MM".
func monthKey(s string) string {
	if s == "" {
		return ""
	}
	k, err := calendar.NormalizeYearMonth(s)
	if err != nil {
		return s
	}
	return k
}
