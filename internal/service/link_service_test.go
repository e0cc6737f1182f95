package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linkFixture struct {
	svc      LinkService
	expenses *repository.SQLiteExpenseRepo
	assets   *repository.SQLiteIlliquidAssetRepo
}

func newLinkFixture(t *testing.T, data *domain.FinancialData) linkFixture {
	t.Helper()
	database := newSeededDB(t, data)
	return linkFixture{
		svc:      NewLinkService(testutil.NewTestUoW(database)),
		expenses: repository.NewSQLiteExpenseRepo(database),
		assets:   repository.NewSQLiteIlliquidAssetRepo(database),
	}
}

func TestLinkService_LinkSeedsSchedule(t *testing.T) {
	e := testutil.NewTestExpense("House deposit", testutil.WithExpenseAmount(250000), testutil.Variable("2025-06-01"))
	a := testutil.NewTestIlliquidAsset("House")
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*a},
	})
	ctx := context.Background()

	result, err := f.svc.Link(ctx, e.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, result.AssetChanged)

	gotE, err := f.expenses.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, gotE.LinkedIlliquidAssetID)

	gotA, err := f.assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, gotA.LinkedExpenseID)
	assert.Equal(t, domain.AssetScheduled, gotA.State())
	assert.False(t, gotA.IsActive)
	assert.Equal(t, "2025-06-01", gotA.ScheduledDate)
	require.NotNil(t, gotA.ScheduledValue)
	assert.Equal(t, "250000", gotA.ScheduledValue.String())
}

func TestLinkService_LinkWithoutDateOnlyBinds(t *testing.T) {
	e := testutil.NewTestExpense("Maintenance")
	a := testutil.NewTestIlliquidAsset("Boat", testutil.WithAssetValue(8000))
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*a},
	})
	ctx := context.Background()

	_, err := f.svc.Link(ctx, e.ID, a.ID)
	require.NoError(t, err)

	gotA, err := f.assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetUnscheduled, gotA.State())
	assert.True(t, gotA.IsActive)
	assert.Equal(t, e.ID, gotA.LinkedExpenseID)
}

func TestLinkService_LinkErrors(t *testing.T) {
	e1 := testutil.NewTestExpense("First")
	e2 := testutil.NewTestExpense("Second")
	a := testutil.NewTestIlliquidAsset("Shared")
	other := testutil.NewTestIlliquidAsset("Other")
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e1, *e2},
		IlliquidAssets: []domain.IlliquidAsset{*a, *other},
	})
	ctx := context.Background()
	_, err := f.svc.Link(ctx, e1.ID, a.ID)
	require.NoError(t, err)

	_, err = f.svc.Link(ctx, e2.ID, a.ID)
	assert.ErrorIs(t, err, ErrInvalidLink)
	assert.ErrorIs(t, err, domain.ErrAssetLinkedElsewhere)

	_, err = f.svc.Link(ctx, e1.ID, other.ID)
	assert.ErrorIs(t, err, ErrInvalidLink, "expense already linked elsewhere")

	_, err = f.svc.Link(ctx, "missing", a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.svc.Link(ctx, "", a.ID)
	assert.ErrorIs(t, err, ErrInvalidLink)

	gotE2, err := f.expenses.GetByID(ctx, e2.ID)
	require.NoError(t, err)
	assert.Empty(t, gotE2.LinkedIlliquidAssetID, "failed link left no partial write")
}

func TestLinkService_UpdateExpensePropagatesOnlyToLinkedAsset(t *testing.T) {
	e := testutil.NewTestExpense("Deposit", testutil.Variable("2025-06-01"))
	linked := testutil.NewTestIlliquidAsset("House")
	bystander := testutil.NewTestIlliquidAsset("Car", testutil.ScheduledFor("2025-06-01", 9000))
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*linked, *bystander},
	})
	ctx := context.Background()
	_, err := f.svc.Link(ctx, e.ID, linked.ID)
	require.NoError(t, err)

	updated := *e
	updated.SpecificDate = "2025-09-15"
	updated.LinkedIlliquidAssetID = "" // ignored
	result, err := f.svc.UpdateExpense(ctx, &updated)
	require.NoError(t, err)
	assert.True(t, result.AssetChanged)

	gotE, err := f.expenses.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-15", gotE.SpecificDate)
	assert.Equal(t, linked.ID, gotE.LinkedIlliquidAssetID)

	gotLinked, err := f.assets.GetByID(ctx, linked.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-15", gotLinked.ScheduledDate)

	gotBystander, err := f.assets.GetByID(ctx, bystander.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", gotBystander.ScheduledDate)
}

func TestLinkService_UpdateExpenseWindowFallback(t *testing.T) {
	e := testutil.NewTestExpense("Lease", testutil.WithExpenseWindow("2025-01", "2025-08"))
	a := testutil.NewTestIlliquidAsset("Car")
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*a},
	})
	ctx := context.Background()
	_, err := f.svc.Link(ctx, e.ID, a.ID)
	require.NoError(t, err)

	stored, err := f.expenses.GetByID(ctx, e.ID)
	require.NoError(t, err)
	_, err = f.svc.UpdateExpense(ctx, stored)
	require.NoError(t, err)

	gotA, err := f.assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetScheduled, gotA.State())
	assert.Equal(t, "2025-08-01", gotA.ScheduledDate, "window end resolves to the first of the month")
}

func TestLinkService_TriggeredAssetKeepsHistory(t *testing.T) {
	e := testutil.NewTestExpense("Deposit", testutil.Variable("2024-01-01"))
	a := testutil.NewTestIlliquidAsset("Land", testutil.ScheduledFor("2024-01-01", 50000), testutil.TriggeredOn("2024-01-02"))
	a.LinkedExpenseID = e.ID
	e.LinkedIlliquidAssetID = a.ID
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*a},
	})
	ctx := context.Background()

	result, err := f.svc.SetExpenseDate(ctx, e.ID, "2026-03-01")
	require.NoError(t, err)
	assert.False(t, result.AssetChanged)

	gotA, err := f.assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetTriggered, gotA.State())
	assert.Equal(t, "2024-01-01", gotA.ScheduledDate)
	assert.Equal(t, "2024-01-02", gotA.TriggeredDate)
}

func TestLinkService_SetExpenseDateRejectsMalformed(t *testing.T) {
	e := testutil.NewTestExpense("Deposit")
	f := newLinkFixture(t, &domain.FinancialData{Expenses: []domain.Expense{*e}})

	_, err := f.svc.SetExpenseDate(context.Background(), e.ID, "2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestLinkService_Unlink(t *testing.T) {
	e := testutil.NewTestExpense("Deposit", testutil.Variable("2025-06-01"))
	a := testutil.NewTestIlliquidAsset("House")
	f := newLinkFixture(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*a},
	})
	ctx := context.Background()
	_, err := f.svc.Link(ctx, e.ID, a.ID)
	require.NoError(t, err)

	result, err := f.svc.Unlink(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, result.AssetChanged)

	gotE, err := f.expenses.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, gotE.LinkedIlliquidAssetID)

	gotA, err := f.assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, gotA.LinkedExpenseID)
	assert.Equal(t, domain.AssetUnscheduled, gotA.State())

	again, err := f.svc.Unlink(ctx, e.ID)
	require.NoError(t, err, "unlinking twice is a no-op")
	assert.Nil(t, again.Asset)
}

func TestLinkService_LinkRollsBackOnAssetWriteFailure(t *testing.T) {
	e := testutil.NewTestExpense("Deposit", testutil.Variable("2025-06-01"))
	a := testutil.NewTestIlliquidAsset("House")
	database := newSeededDB(t, &domain.FinancialData{
		Expenses:       []domain.Expense{*e},
		IlliquidAssets: []domain.IlliquidAsset{*a},
	})
	// Exec #1 is the expense update, #2 the asset update.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("injected asset failure")}
	svc := NewLinkService(uow)
	ctx := context.Background()

	_, err := svc.Link(ctx, e.ID, a.ID)
	require.Error(t, err)

	gotE, err := repository.NewSQLiteExpenseRepo(database).GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, gotE.LinkedIlliquidAssetID)
}
