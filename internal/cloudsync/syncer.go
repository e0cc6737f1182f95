// Package cloudsync moves the financial-data aggregate to and from a remote
// snapshot store. A Syncer allows one load or save at a time and records the
// server's timestamp as the last sync.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSyncInFlight is returned when a push or pull is requested while
	// another is still running.
	ErrSyncInFlight = errors.New("sync already in progress")
	// ErrNoSnapshot is returned by Remote.Latest when the user has never pushed.
	ErrNoSnapshot = errors.New("no remote snapshot")
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSaving  State = "saving"
	StateError   State = "error"
)

// InFlight reports whether the state blocks a new action.
func (s State) InFlight() bool {
	return s == StateLoading || s == StateSaving
}

// Snapshot is a stored aggregate with the time the server accepted it.
type Snapshot struct {
	Data            domain.FinancialData
	ServerTimestamp time.Time
}

// Remote is a per-user snapshot store. The timestamps it returns come from
// the server, never from the calling machine.
type Remote interface {
	Latest(ctx context.Context, userID string) (Snapshot, error)
	Upsert(ctx context.Context, userID string, data *domain.FinancialData) (time.Time, error)
}

// Status is a point-in-time view of the syncer.
type Status struct {
	State     State      `json:"state"`
	LastSync  *time.Time `json:"lastSync,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

type Syncer struct {
	remote Remote
	userID string
	logger logrus.FieldLogger

	mu       sync.Mutex
	state    State
	lastSync *time.Time
	lastErr  string
}

func NewSyncer(remote Remote, userID string, logger logrus.FieldLogger) *Syncer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Syncer{
		remote: remote,
		userID: userID,
		logger: logger.WithFields(logrus.Fields{"component": "sync", "user": userID}),
		state:  StateIdle,
	}
}

// SetLastSync seeds the last-sync time, typically from local storage at startup.
func (s *Syncer) SetLastSync(t *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSync = copyTime(t)
}

func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, LastSync: copyTime(s.lastSync), LastError: s.lastErr}
}

func (s *Syncer) begin(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.InFlight() {
		return fmt.Errorf("%s requested while %s: %w", next, s.state, ErrSyncInFlight)
	}
	s.state = next
	s.lastErr = ""
	return nil
}

func (s *Syncer) finish(serverTS *time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.lastErr = err.Error()
		return
	}
	s.state = StateIdle
	s.lastSync = copyTime(serverTS)
}

// PushCommit records a successful upload locally. It runs while the syncer
// is still saving.
type PushCommit func(ctx context.Context, serverTS time.Time) error

// PullCommit stores a pulled aggregate locally. It runs while the syncer is
// still loading.
type PullCommit func(ctx context.Context, data *domain.FinancialData) error

// Push saves data remotely, then runs commit. The state stays saving until
// commit returns, and the last sync only advances when both steps succeed.
// On success data.LastSync is set to the server timestamp; on failure data is
// left untouched. A nil commit is allowed.
func (s *Syncer) Push(ctx context.Context, data *domain.FinancialData, commit PushCommit) (time.Time, error) {
	if err := s.begin(StateSaving); err != nil {
		return time.Time{}, err
	}
	ts, err := s.remote.Upsert(ctx, s.userID, data)
	if err != nil {
		err = fmt.Errorf("pushing snapshot: %w", err)
		s.finish(nil, err)
		s.logger.WithError(err).Warn("push failed")
		return time.Time{}, err
	}
	ts = ts.UTC()
	if commit != nil {
		if err := commit(ctx, ts); err != nil {
			s.finish(nil, err)
			s.logger.WithError(err).Warn("push not recorded locally")
			return time.Time{}, err
		}
	}
	s.finish(&ts, nil)
	data.LastSync = &ts
	s.logger.WithFields(logrus.Fields{"records": data.RecordCount(), "server_ts": ts.Format(time.RFC3339)}).Info("pushed snapshot")
	return ts, nil
}

// Pull fetches the latest remote snapshot and hands it to commit. The
// returned aggregate carries the server timestamp as LastSync. The state
// stays loading until commit returns. A nil commit is allowed.
func (s *Syncer) Pull(ctx context.Context, commit PullCommit) (*domain.FinancialData, error) {
	if err := s.begin(StateLoading); err != nil {
		return nil, err
	}
	snap, err := s.remote.Latest(ctx, s.userID)
	if err != nil {
		err = fmt.Errorf("pulling snapshot: %w", err)
		s.finish(nil, err)
		s.logger.WithError(err).Warn("pull failed")
		return nil, err
	}
	ts := snap.ServerTimestamp.UTC()
	data := snap.Data
	data.LastSync = &ts
	if commit != nil {
		if err := commit(ctx, &data); err != nil {
			s.finish(nil, err)
			s.logger.WithError(err).Warn("pull not stored locally")
			return nil, err
		}
	}
	s.finish(&ts, nil)
	s.logger.WithFields(logrus.Fields{"records": data.RecordCount(), "server_ts": ts.Format(time.RFC3339)}).Info("pulled snapshot")
	return &data, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
