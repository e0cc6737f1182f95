package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalDefaults(t *testing.T) {
	data := Convert(validMinimalSchema())

	require.Len(t, data.ActiveIncome, 1)
	_, err := uuid.Parse(data.ActiveIncome[0].ID)
	assert.NoError(t, err, "missing ids are generated")
	assert.Equal(t, domain.IncomeActive, data.ActiveIncome[0].Status)

	require.Len(t, data.Expenses, 1)
	e := data.Expenses[0]
	assert.Equal(t, domain.ExpenseRecurring, e.Type)
	assert.Equal(t, domain.ExpenseActive, e.Status)
	assert.Equal(t, domain.FrequencyMonthly, e.EffectiveFrequency())

	assert.NotNil(t, data.PassiveIncome)
	assert.Empty(t, data.IlliquidAssets)
	assert.Nil(t, data.LastSync)
}

func TestConvert_FullSchema(t *testing.T) {
	data := Convert(validFullSchema())

	assert.Equal(t, 7, data.RecordCount())

	p := data.PassiveIncome[0]
	assert.Equal(t, "pi1", p.ID)
	assert.Equal(t, domain.IncomePending, p.Status)
	assert.True(t, p.UseSchedule)
	assert.Equal(t, "2025-01", p.Schedule.StartDate)
	assert.Equal(t, "2025-03", p.Schedule.EndDate, "full dates truncate to their month")

	yearly := data.FindExpense("e2")
	require.NotNil(t, yearly)
	assert.Equal(t, domain.FrequencyYearly, yearly.Frequency)
	assert.Equal(t, 3, yearly.TriggerMonth)

	l := data.LiquidAssets[0]
	assert.True(t, l.IsActive, "liquid assets default to active")
	assert.Equal(t, "4", l.APY.String())
	assert.True(t, l.DividendYield.IsZero())

	a := data.FindIlliquidAsset("a1")
	require.NotNil(t, a)
	assert.Equal(t, domain.AssetScheduled, a.State())
	assert.False(t, a.IsActive, "scheduled assets stay dormant by default")
	require.NotNil(t, a.ScheduledValue)
	assert.Equal(t, "250000", a.ScheduledValue.String())
	assert.Equal(t, "e3", a.LinkedExpenseID)
}

func TestConvert_CompletesOneSidedLinks(t *testing.T) {
	s := validFullSchema()
	s.IlliquidAssets[0].LinkedExpenseID = nil
	require.Empty(t, ValidateImportSchema(s))

	data := Convert(s)
	assert.Equal(t, "e3", data.FindIlliquidAsset("a1").LinkedExpenseID)

	s = validFullSchema()
	s.Expenses[2].LinkedIlliquidAssetID = nil
	require.Empty(t, ValidateImportSchema(s))

	data = Convert(s)
	assert.Equal(t, "a1", data.FindExpense("e3").LinkedIlliquidAssetID)
}

func TestConvert_TriggeredAssetIsActive(t *testing.T) {
	s := &ImportSchema{
		IlliquidAssets: []IlliquidAssetImport{{
			Name: "Land", Value: dec("50000"),
			IsScheduled: ptrBool(true), ScheduledDate: ptrStr("2024-01-01"),
			IsTriggered: ptrBool(true), TriggeredDate: ptrStr("2024-01-02"),
		}},
	}
	require.Empty(t, ValidateImportSchema(s))

	a := Convert(s).IlliquidAssets[0]
	assert.Equal(t, domain.AssetTriggered, a.State())
	assert.True(t, a.IsActive)
	assert.Nil(t, a.ScheduledValue)
}

func TestLoadImportSchema_ExportRoundTrip(t *testing.T) {
	original := Convert(validFullSchema())
	raw, err := json.Marshal(original)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	require.Empty(t, ValidateImportSchema(schema))

	again := Convert(schema)
	assert.Equal(t, original.RecordCount(), again.RecordCount())
	assert.Equal(t, original.Expenses[2].SpecificDate, again.Expenses[2].SpecificDate)
	assert.Equal(t, original.PassiveIncome[0].Schedule, again.PassiveIncome[0].Schedule)
	assert.True(t, original.IlliquidAssets[0].ScheduledValue.Equal(*again.IlliquidAssets[0].ScheduledValue))
	assert.Equal(t, original.LiquidAssets[0].IsActive, again.LiquidAssets[0].IsActive)
}

func TestParseImportSchema_NumbersAndStrings(t *testing.T) {
	schema, err := ParseImportSchema([]byte(`{
		"activeIncome": [{"source": "Salary", "amount": 5000}],
		"expenses": [{"name": "Rent", "amount": "1000.50", "day": 5}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "5000", schema.ActiveIncome[0].Amount.String())
	assert.Equal(t, "1000.5", schema.Expenses[0].Amount.String())
	require.NotNil(t, schema.Expenses[0].Day)
	assert.Equal(t, 5, *schema.Expenses[0].Day)
}

func TestParseImportSchema_Malformed(t *testing.T) {
	_, err := ParseImportSchema([]byte(`{"expenses": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}

func TestLoadImportSchema_MissingFile(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_AlignsLinkedAssetDate(t *testing.T) {
	s := validFullSchema()
	s.IlliquidAssets[0].ScheduledDate = ptrStr("2025-01-15")
	require.Empty(t, ValidateImportSchema(s))

	data := Convert(s)
	assert.Equal(t, "2025-06-01", data.FindIlliquidAsset("a1").ScheduledDate)
}
