package cloudsync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// MemoryRemote is an in-process Remote. Snapshots are deep-copied through JSON
// so callers cannot alias stored data. Clock stands in for the server clock.
type MemoryRemote struct {
	Clock func() time.Time
	Err   error

	// Block, when set, is received from before each call returns. Tests use
	// it to hold an operation in flight.
	Block chan struct{}

	mu        sync.Mutex
	snapshots map[string]memorySnapshot
	calls     int
}

type memorySnapshot struct {
	raw []byte
	ts  time.Time
}

func NewMemoryRemote(clock func() time.Time) *MemoryRemote {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &MemoryRemote{Clock: clock, snapshots: make(map[string]memorySnapshot)}
}

// Calls is the number of Latest and Upsert calls served.
func (m *MemoryRemote) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MemoryRemote) wait(ctx context.Context) error {
	if m.Block == nil {
		return nil
	}
	select {
	case <-m.Block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MemoryRemote) Latest(ctx context.Context, userID string) (Snapshot, error) {
	if err := m.wait(ctx); err != nil {
		return Snapshot{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return Snapshot{}, m.Err
	}
	snap, ok := m.snapshots[userID]
	if !ok {
		return Snapshot{}, fmt.Errorf("user %s: %w", userID, ErrNoSnapshot)
	}
	var data domain.FinancialData
	if err := json.Unmarshal(snap.raw, &data); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return Snapshot{Data: data, ServerTimestamp: snap.ts}, nil
}

func (m *MemoryRemote) Upsert(ctx context.Context, userID string, data *domain.FinancialData) (time.Time, error) {
	if err := m.wait(ctx); err != nil {
		return time.Time{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return time.Time{}, m.Err
	}
	stored := *data
	stored.LastSync = nil
	raw, err := json.Marshal(&stored)
	if err != nil {
		return time.Time{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	ts := m.Clock().UTC()
	m.snapshots[userID] = memorySnapshot{raw: raw, ts: ts}
	return ts, nil
}
