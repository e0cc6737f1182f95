package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testUser = "u1"

// testNow falls in November 2024, so month 1 is December 2024.
var testNow = time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// seed stores data as the test user's aggregate.
func seed(t *testing.T, database *sql.DB, data *domain.FinancialData) {
	t.Helper()
	require.NoError(t, repository.NewSQLiteFinancialDataRepo(database, testUser).ReplaceAll(context.Background(), data))
}

func newSeededDB(t *testing.T, data *domain.FinancialData) *sql.DB {
	t.Helper()
	database := testutil.NewTestDB(t)
	seed(t, database, data)
	return database
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
