package importer

import (
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

var validActiveIncomeStatuses = map[string]bool{"active": true, "inactive": true}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateActiveIncome(schema.ActiveIncome)...)
	errs = append(errs, validatePassiveIncome(schema.PassiveIncome)...)

	expenseIDs := make(map[string]bool)
	errs = append(errs, validateExpenses(schema.Expenses, expenseIDs)...)
	errs = append(errs, validateLiquidAssets(schema.LiquidAssets)...)

	assetIDs := make(map[string]bool)
	errs = append(errs, validateIlliquidAssets(schema.IlliquidAssets, assetIDs)...)

	errs = append(errs, validateLinks(schema, expenseIDs, assetIDs)...)

	return errs
}

func validateActiveIncome(entries []ActiveIncomeImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, e := range entries {
		prefix := fmt.Sprintf("activeIncome[%d]", i)
		errs = append(errs, checkID(prefix, e.ID, seen)...)
		if e.Source == "" {
			errs = append(errs, fmt.Errorf("%s.source is required", prefix))
		}
		if e.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.amount must not be negative", prefix))
		}
		if e.Status != "" && !validActiveIncomeStatuses[e.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, e.Status))
		}
	}

	return errs
}

func validatePassiveIncome(entries []PassiveIncomeImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, e := range entries {
		prefix := fmt.Sprintf("passiveIncome[%d]", i)
		errs = append(errs, checkID(prefix, e.ID, seen)...)
		if e.Source == "" {
			errs = append(errs, fmt.Errorf("%s.source is required", prefix))
		}
		if e.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.amount must not be negative", prefix))
		}
		if e.Status != "" && !domain.ValidIncomeStatuses[e.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, e.Status))
		}
		if e.APY != nil && e.APY.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.apy must not be negative", prefix))
		}
		if e.Schedule != nil {
			errs = append(errs, validateWindow(prefix+".schedule", e.Schedule.StartDate, e.Schedule.EndDate)...)
		}
		if domain.BoolFromPtrWithDefault(false, e.UseSchedule) && (e.Schedule == nil || e.Schedule.StartDate == "") {
			errs = append(errs, fmt.Errorf("%s.schedule.startDate is required when useSchedule is set", prefix))
		}
	}

	return errs
}

func validateExpenses(expenses []ExpenseImport, ids map[string]bool) []error {
	var errs []error

	for i, e := range expenses {
		prefix := fmt.Sprintf("expenses[%d]", i)
		errs = append(errs, checkID(prefix, e.ID, ids)...)
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if e.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.amount must not be negative", prefix))
		}
		if e.Type != "" && !domain.ValidExpenseTypes[e.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, e.Type))
		}
		if e.Status != "" && !domain.ValidExpenseStatuses[e.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, e.Status))
		}
		if e.Frequency != "" && !domain.ValidFrequencies[e.Frequency] {
			errs = append(errs, fmt.Errorf("%s.frequency: invalid value %q", prefix, e.Frequency))
		}
		if e.Day != nil && (*e.Day < 1 || *e.Day > 31) {
			errs = append(errs, fmt.Errorf("%s.day must be between 1 and 31, got %d", prefix, *e.Day))
		}
		if e.TriggerMonth != nil && (*e.TriggerMonth < 1 || *e.TriggerMonth > 12) {
			errs = append(errs, fmt.Errorf("%s.triggerMonth must be between 1 and 12, got %d", prefix, *e.TriggerMonth))
		}
		if e.Frequency == string(domain.FrequencyYearly) && e.TriggerMonth == nil {
			errs = append(errs, fmt.Errorf("%s.triggerMonth is required for yearly expenses", prefix))
		}
		errs = append(errs, validateOptionalDate(prefix+".specificDate", e.SpecificDate)...)
		errs = append(errs, validateWindow(prefix, derefStr(e.StartDate), derefStr(e.EndDate))...)
	}

	return errs
}

func validateLiquidAssets(assets []LiquidAssetImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, a := range assets {
		prefix := fmt.Sprintf("liquidAssets[%d]", i)
		errs = append(errs, checkID(prefix, a.ID, seen)...)
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if a.APY != nil && a.APY.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.apy must not be negative", prefix))
		}
		if a.DividendYield != nil && a.DividendYield.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.dividendYield must not be negative", prefix))
		}
	}

	return errs
}

func validateIlliquidAssets(assets []IlliquidAssetImport, ids map[string]bool) []error {
	var errs []error

	for i, a := range assets {
		prefix := fmt.Sprintf("illiquidAssets[%d]", i)
		errs = append(errs, checkID(prefix, a.ID, ids)...)
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if a.Value.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.value must not be negative", prefix))
		}

		scheduled := domain.BoolFromPtrWithDefault(false, a.IsScheduled)
		triggered := domain.BoolFromPtrWithDefault(false, a.IsTriggered)
		if scheduled && derefStr(a.ScheduledDate) == "" {
			errs = append(errs, fmt.Errorf("%s.scheduledDate is required when isScheduled is set", prefix))
		}
		errs = append(errs, validateOptionalDate(prefix+".scheduledDate", a.ScheduledDate)...)
		if triggered && !scheduled {
			errs = append(errs, fmt.Errorf("%s: isTriggered requires isScheduled", prefix))
		}
		if triggered && derefStr(a.TriggeredDate) == "" {
			errs = append(errs, fmt.Errorf("%s.triggeredDate is required when isTriggered is set", prefix))
		}
		errs = append(errs, validateOptionalDate(prefix+".triggeredDate", a.TriggeredDate)...)
	}

	return errs
}

// validateLinks checks that both sides of every expense/asset link exist and
// agree with each other.
func validateLinks(schema *ImportSchema, expenseIDs, assetIDs map[string]bool) []error {
	var errs []error

	assetLinks := make(map[string]string)
	for i, a := range schema.IlliquidAssets {
		ref := derefStr(a.LinkedExpenseID)
		if ref == "" {
			continue
		}
		if !expenseIDs[ref] {
			errs = append(errs, fmt.Errorf("illiquidAssets[%d].linkedExpenseId: unknown expense %q", i, ref))
		}
		if a.ID != "" {
			assetLinks[a.ID] = ref
		}
	}

	linkedAssets := make(map[string]string)
	for i, e := range schema.Expenses {
		ref := derefStr(e.LinkedIlliquidAssetID)
		if ref == "" {
			continue
		}
		prefix := fmt.Sprintf("expenses[%d].linkedIlliquidAssetId", i)
		if !assetIDs[ref] {
			errs = append(errs, fmt.Errorf("%s: unknown asset %q", prefix, ref))
			continue
		}
		if other, ok := linkedAssets[ref]; ok {
			errs = append(errs, fmt.Errorf("%s: asset %q already linked to expense %q", prefix, ref, other))
			continue
		}
		linkedAssets[ref] = e.ID
		if back, ok := assetLinks[ref]; ok && back != e.ID {
			errs = append(errs, fmt.Errorf("%s: asset %q links back to expense %q", prefix, ref, back))
		}
	}

	return errs
}

func checkID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return nil
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

func validateWindow(prefix, start, end string) []error {
	var errs []error
	var startKey, endKey string

	if start != "" {
		k, err := calendar.NormalizeYearMonth(start)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.startDate: invalid month %q (expected YYYY-MM)", prefix, start))
		}
		startKey = k
	}
	if end != "" {
		k, err := calendar.NormalizeYearMonth(end)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.endDate: invalid month %q (expected YYYY-MM)", prefix, end))
		}
		endKey = k
	}
	if startKey != "" && endKey != "" && calendar.CompareYearMonth(endKey, startKey) < 0 {
		errs = append(errs, fmt.Errorf("%s.endDate %q must not be before startDate %q", prefix, end, start))
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := calendar.ParseDate(*dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
