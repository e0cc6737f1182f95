package trigger

import (
	"testing"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledAsset(id, date string, value int64) domain.IlliquidAsset {
	v := decimal.NewFromInt(value)
	return domain.IlliquidAsset{
		ID: id, Name: "Asset " + id, Value: decimal.Zero,
		IsScheduled: true, ScheduledDate: date, ScheduledValue: &v,
	}
}

func TestSweep_TriggersDueAsset(t *testing.T) {
	assets := []domain.IlliquidAsset{scheduledAsset("house", "2024-01-01", 50000)}

	res := Sweep(assets, "2024-01-02")
	require.Len(t, res.Triggered, 1)
	assert.Equal(t, "house", res.Triggered[0].AssetID)
	assert.Equal(t, "2024-01-02", res.Triggered[0].TriggeredDate)
	assert.True(t, decimal.NewFromInt(50000).Equal(res.Triggered[0].Value))

	got := res.Assets[0]
	assert.Equal(t, domain.AssetTriggered, got.State())
	assert.True(t, got.IsActive)
	assert.True(t, decimal.NewFromInt(50000).Equal(got.Value))
	assert.True(t, res.Changed())
}

func TestSweep_Idempotent(t *testing.T) {
	first := Sweep([]domain.IlliquidAsset{scheduledAsset("house", "2024-01-01", 50000)}, "2024-01-02")
	require.True(t, first.Changed())

	second := Sweep(first.Assets, "2024-01-05")
	assert.False(t, second.Changed())
	assert.Empty(t, second.Triggered)
	assert.Equal(t, first.Assets, second.Assets)
	assert.Equal(t, "2024-01-02", second.Assets[0].TriggeredDate)
}

func TestSweep_DueOnSameDay(t *testing.T) {
	res := Sweep([]domain.IlliquidAsset{scheduledAsset("car", "2024-03-15", 9000)}, "2024-03-15")
	assert.Len(t, res.Triggered, 1)
}

func TestSweep_FutureAssetStaysScheduled(t *testing.T) {
	res := Sweep([]domain.IlliquidAsset{scheduledAsset("car", "2024-03-16", 9000)}, "2024-03-15")
	assert.Empty(t, res.Triggered)
	assert.Equal(t, domain.AssetScheduled, res.Assets[0].State())
	assert.False(t, res.Assets[0].IsActive)
}

func TestSweep_MalformedDateIsolated(t *testing.T) {
	assets := []domain.IlliquidAsset{
		scheduledAsset("bad", "01/02/2024", 1),
		scheduledAsset("empty", "", 1),
		scheduledAsset("good", "2024-01-01", 700),
	}
	res := Sweep(assets, "2024-02-01")

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "bad", res.Skipped[0].AssetID)
	assert.NotEmpty(t, res.Skipped[0].Reason)
	assert.Equal(t, "empty", res.Skipped[1].AssetID)
	require.Len(t, res.Triggered, 1)
	assert.Equal(t, "good", res.Triggered[0].AssetID)
}

func TestSweep_UnscheduledUntouched(t *testing.T) {
	plain := domain.IlliquidAsset{ID: "art", Value: decimal.NewFromInt(300), IsActive: true}
	res := Sweep([]domain.IlliquidAsset{plain}, "2030-01-01")
	assert.Empty(t, res.Triggered)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, plain, res.Assets[0])
}

func TestSweep_KeepsValueWithoutScheduledValue(t *testing.T) {
	a := scheduledAsset("boat", "2024-01-01", 0)
	a.ScheduledValue = nil
	a.Value = decimal.NewFromInt(1234)

	res := Sweep([]domain.IlliquidAsset{a}, "2024-06-01")
	require.Len(t, res.Triggered, 1)
	assert.True(t, decimal.NewFromInt(1234).Equal(res.Assets[0].Value))
}

func TestSweep_DoesNotMutateInput(t *testing.T) {
	assets := []domain.IlliquidAsset{scheduledAsset("house", "2024-01-01", 50000)}
	_ = Sweep(assets, "2024-01-02")
	assert.False(t, assets[0].IsTriggered)
	assert.Equal(t, domain.AssetScheduled, assets[0].State())
}

func TestResult_ChangedAssets(t *testing.T) {
	assets := []domain.IlliquidAsset{
		scheduledAsset("a", "2024-01-01", 1),
		scheduledAsset("b", "2025-01-01", 1),
		scheduledAsset("c", "2023-12-31", 1),
	}
	res := Sweep(assets, "2024-01-01")
	changed := res.ChangedAssets()
	require.Len(t, changed, 2)
	assert.Equal(t, "a", changed[0].ID)
	assert.Equal(t, "c", changed[1].ID)

	assert.Nil(t, Sweep(nil, "2024-01-01").ChangedAssets())
}
