package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/importer"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importJSON = `{
  "activeIncome": [{"source": "Salary", "amount": 5000}],
  "passiveIncome": [{"source": "Rental", "amount": 900, "useSchedule": true,
                     "schedule": {"startDate": "2025-01", "endDate": "2025-03"}}],
  "expenses": [
    {"id": "rent", "name": "Rent", "amount": 1000},
    {"id": "deposit", "name": "House deposit", "amount": 250000, "type": "variable",
     "specificDate": "2025-06-01", "linkedIlliquidAssetId": "house"}
  ],
  "liquidAssets": [{"name": "Savings", "value": 10000}],
  "illiquidAssets": [{"id": "house", "name": "House", "value": 0,
                      "isScheduled": true, "scheduledDate": "2025-06-01", "scheduledValue": 250000}]
}`

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRecordService_Import(t *testing.T) {
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	svc := NewRecordService(testutil.NewTestUoW(database), testUser, obs)
	ctx := context.Background()

	result, err := svc.Import(ctx, writeImportFile(t, importJSON))
	require.NoError(t, err)
	assert.Equal(t, 6, result.Total())
	assert.Equal(t, 2, result.ExpenseCount)
	assert.Equal(t, 0, result.ReplacedRecordCount)

	data, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, data.RecordCount())
	house := data.FindIlliquidAsset("house")
	require.NotNil(t, house)
	assert.Equal(t, "deposit", house.LinkedExpenseID, "back link completed on import")

	require.Len(t, obs.events, 1)
	assert.Equal(t, "import", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 6, obs.events[0].Fields["records"])
}

func TestRecordService_ImportReplacesAndKeepsLastSync(t *testing.T) {
	database := newSeededDB(t, testutil.NewTestFinancialData())
	synced := time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repository.NewSQLiteSyncStateRepo(database).SetLastSync(context.Background(), testUser, synced))

	svc := NewRecordService(testutil.NewTestUoW(database), testUser)
	ctx := context.Background()

	result, err := svc.Import(ctx, writeImportFile(t, `{"expenses": [{"name": "Only", "amount": 1}]}`))
	require.NoError(t, err)
	assert.Equal(t, 5, result.ReplacedRecordCount)

	data, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, data.RecordCount())
	require.NotNil(t, data.LastSync)
	assert.True(t, synced.Equal(*data.LastSync))
}

func TestRecordService_ImportValidationFailureLeavesData(t *testing.T) {
	database := newSeededDB(t, testutil.NewTestFinancialData())
	obs := &recordingObserver{}
	svc := NewRecordService(testutil.NewTestUoW(database), testUser, obs)
	ctx := context.Background()

	_, err := svc.Import(ctx, writeImportFile(t, `{"expenses": [{"name": "", "amount": 1, "frequency": "weekly"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "expenses[0].name is required")

	data, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, data.RecordCount())

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestRecordService_ImportRollsBackOnWriteFailure(t *testing.T) {
	database := newSeededDB(t, testutil.NewTestFinancialData())
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 7, Err: errors.New("injected insert failure")}
	svc := NewRecordService(uow, testUser)
	ctx := context.Background()

	_, err := svc.Import(ctx, writeImportFile(t, importJSON))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")

	data, err := NewRecordService(testutil.NewTestUoW(database), testUser).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, data.RecordCount())
	assert.Equal(t, "Salary", data.ActiveIncome[0].Source)
}

func TestRecordService_ImportMissingFile(t *testing.T) {
	svc := NewRecordService(testutil.NewTestUoW(testutil.NewTestDB(t)), testUser)
	_, err := svc.Import(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecordService_ExportRoundTrip(t *testing.T) {
	original := testutil.NewTestFinancialData()
	database := newSeededDB(t, original)
	svc := NewRecordService(testutil.NewTestUoW(database), testUser)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))
	assert.Contains(t, buf.String(), `"illiquidAssets"`)

	schema, err := importer.ParseImportSchema(buf.Bytes())
	require.NoError(t, err)

	other := testutil.NewTestDB(t)
	otherSvc := NewRecordService(testutil.NewTestUoW(other), testUser)
	_, err = otherSvc.ImportFromSchema(ctx, schema)
	require.NoError(t, err)

	data, err := otherSvc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original.RecordCount(), data.RecordCount())
	assert.Equal(t, original.IlliquidAssets[0].ID, data.IlliquidAssets[0].ID)
	assert.Equal(t, original.IlliquidAssets[0].ScheduledDate, data.IlliquidAssets[0].ScheduledDate)
	assert.True(t, original.Expenses[0].Amount.Equal(data.Expenses[0].Amount))
}

func TestRecordService_Assets(t *testing.T) {
	database := newSeededDB(t, testutil.NewTestFinancialData())
	svc := NewRecordService(testutil.NewTestUoW(database), testUser)

	assets, err := svc.Assets(context.Background())
	require.NoError(t, err)
	require.Len(t, assets.Liquid, 1)
	require.Len(t, assets.Illiquid, 1)
	assert.Equal(t, "Savings", assets.Liquid[0].Name)
	assert.Equal(t, "House", assets.Illiquid[0].Name)
}
