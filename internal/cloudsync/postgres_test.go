package cloudsync

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribePQ_MissingTable(t *testing.T) {
	err := describePQ(&pq.Error{Code: undefinedTable, Message: `relation "financial_snapshots" does not exist`})
	assert.Contains(t, err.Error(), "run EnsureSchema")

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
}

func TestDescribePQ_OtherErrors(t *testing.T) {
	err := describePQ(&pq.Error{Code: "23505", Message: "duplicate key"})
	assert.Contains(t, err.Error(), "unique_violation")

	plain := describePQ(errors.New("broken pipe"))
	assert.Contains(t, plain.Error(), "querying remote")
}

// Runs only against a real server: NUMORAQ_TEST_POSTGRES_DSN=postgres://...
func TestPostgresRemote_RoundTrip(t *testing.T) {
	dsn := os.Getenv("NUMORAQ_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NUMORAQ_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	remote, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer remote.Close()
	require.NoError(t, remote.EnsureSchema(ctx))

	ts, err := remote.Upsert(ctx, "roundtrip-user", sampleData())
	require.NoError(t, err)
	assert.False(t, ts.IsZero())

	snap, err := remote.Latest(ctx, "roundtrip-user")
	require.NoError(t, err)
	assert.True(t, ts.Equal(snap.ServerTimestamp))
	assert.Len(t, snap.Data.Expenses, 1)

	_, err = remote.Latest(ctx, "missing-user")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
