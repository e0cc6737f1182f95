package cloudsync

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serverNow = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleData() *domain.FinancialData {
	return &domain.FinancialData{
		ActiveIncome: []domain.ActiveIncomeEntry{
			{ID: "salary", Source: "Salary", Amount: decimal.NewFromInt(5000), Status: domain.IncomeActive},
		},
		Expenses: []domain.Expense{
			{ID: "rent", Name: "Rent", Amount: decimal.NewFromInt(1000), Type: domain.ExpenseRecurring, Status: domain.ExpenseActive},
		},
	}
}

func TestSyncer_PushRecordsServerTimestamp(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	s := NewSyncer(remote, "u1", quietLogger())

	data := sampleData()
	ts, err := s.Push(context.Background(), data, nil)
	require.NoError(t, err)
	assert.Equal(t, serverNow, ts)
	require.NotNil(t, data.LastSync)
	assert.Equal(t, serverNow, *data.LastSync)

	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	require.NotNil(t, st.LastSync)
	assert.Equal(t, serverNow, *st.LastSync)
}

func TestSyncer_PullReturnsRemoteData(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	_, err := remote.Upsert(context.Background(), "u1", sampleData())
	require.NoError(t, err)

	s := NewSyncer(remote, "u1", quietLogger())
	got, err := s.Pull(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got.ActiveIncome, 1)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.ActiveIncome[0].Amount))
	require.NotNil(t, got.LastSync)
	assert.Equal(t, serverNow, *got.LastSync)
}

func TestSyncer_PullWithoutSnapshot(t *testing.T) {
	s := NewSyncer(NewMemoryRemote(nil), "nobody", quietLogger())
	_, err := s.Pull(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Equal(t, StateError, s.Status().State)
}

func TestSyncer_FailureLeavesDataUntouched(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	remote.Err = errors.New("connection reset")
	s := NewSyncer(remote, "u1", quietLogger())

	earlier := serverNow.Add(-time.Hour)
	s.SetLastSync(&earlier)
	data := sampleData()
	data.LastSync = &earlier

	_, err := s.Push(context.Background(), data, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pushing snapshot")
	assert.Equal(t, earlier, *data.LastSync)

	st := s.Status()
	assert.Equal(t, StateError, st.State)
	assert.Contains(t, st.LastError, "connection reset")
	assert.Equal(t, earlier, *st.LastSync)
}

func TestSyncer_ErrorStateAllowsRetry(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	remote.Err = errors.New("timeout")
	s := NewSyncer(remote, "u1", quietLogger())

	_, err := s.Push(context.Background(), sampleData(), nil)
	require.Error(t, err)

	remote.Err = nil
	_, err = s.Push(context.Background(), sampleData(), nil)
	require.NoError(t, err)
	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Empty(t, st.LastError)
}

func TestSyncer_RejectsWhileInFlight(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	remote.Block = make(chan struct{})
	s := NewSyncer(remote, "u1", quietLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Push(context.Background(), sampleData(), nil)
		done <- err
	}()
	require.Eventually(t, func() bool { return s.Status().State == StateSaving }, time.Second, time.Millisecond)

	_, err := s.Pull(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSyncInFlight)
	_, err = s.Push(context.Background(), sampleData(), nil)
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(remote.Block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, remote.Calls(), "rejected actions never reach the remote")
	assert.Equal(t, StateIdle, s.Status().State)
}

func TestMemoryRemote_DoesNotAlias(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	data := sampleData()
	_, err := remote.Upsert(context.Background(), "u1", data)
	require.NoError(t, err)

	data.Expenses[0].Name = "changed"
	snap, err := remote.Latest(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rent", snap.Data.Expenses[0].Name)
	assert.Nil(t, snap.Data.LastSync)
}

func TestSyncer_CommitFailureSetsErrorState(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	_, err := remote.Upsert(context.Background(), "u1", sampleData())
	require.NoError(t, err)
	s := NewSyncer(remote, "u1", quietLogger())

	_, err = s.Pull(context.Background(), func(context.Context, *domain.FinancialData) error {
		return errors.New("disk full")
	})
	require.Error(t, err)

	st := s.Status()
	assert.Equal(t, StateError, st.State)
	assert.Equal(t, "disk full", st.LastError)
	assert.Nil(t, st.LastSync)

	data := sampleData()
	_, err = s.Push(context.Background(), data, func(context.Context, time.Time) error {
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.Nil(t, data.LastSync)
	assert.Nil(t, s.Status().LastSync)
}

func TestSyncer_StaysInFlightUntilCommitReturns(t *testing.T) {
	remote := NewMemoryRemote(func() time.Time { return serverNow })
	_, err := remote.Upsert(context.Background(), "u1", sampleData())
	require.NoError(t, err)
	s := NewSyncer(remote, "u1", quietLogger())

	var during Status
	var secondErr error
	_, err = s.Pull(context.Background(), func(ctx context.Context, _ *domain.FinancialData) error {
		during = s.Status()
		_, secondErr = s.Push(ctx, sampleData(), nil)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, StateLoading, during.State)
	assert.Nil(t, during.LastSync)
	assert.ErrorIs(t, secondErr, ErrSyncInFlight)

	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	require.NotNil(t, st.LastSync)
	assert.Equal(t, serverNow, *st.LastSync)
}
