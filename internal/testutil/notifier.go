package testutil

import (
	"context"
	"sync"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
)

// RecordingNotifier keeps every batch it receives. Err, when set, is returned
// after recording.
type RecordingNotifier struct {
	Err error

	mu      sync.Mutex
	batches [][]trigger.Event
}

func (n *RecordingNotifier) Notify(_ context.Context, events []trigger.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, append([]trigger.Event(nil), events...))
	return n.Err
}

func (n *RecordingNotifier) Batches() [][]trigger.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][]trigger.Event(nil), n.batches...)
}
