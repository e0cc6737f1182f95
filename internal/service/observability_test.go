package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_Success(t *testing.T) {
	logger, hook := test.NewNullLogger()
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "sweep",
		Duration: 1500 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"triggered": 2},
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "service_use_case", entry.Message)
	assert.Equal(t, "sweep", entry.Data["use_case"])
	assert.Equal(t, int64(1500), entry.Data["duration_ms"])
	assert.Equal(t, true, entry.Data["success"])
	assert.Equal(t, 2, entry.Data["triggered"])
}

func TestLogUseCaseObserver_Failure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "import", Err: errors.New("boom")})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, false, entry.Data["success"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "boom")
}

func TestLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
