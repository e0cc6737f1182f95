// Package notify delivers batched asset-trigger notifications.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
	"github.com/sirupsen/logrus"
)

// Notifier receives every asset that transitioned in one sweep as a single
// batch. Implementations are not called for empty sweeps.
type Notifier interface {
	Notify(ctx context.Context, events []trigger.Event) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, events []trigger.Event) error

func (f NotifierFunc) Notify(ctx context.Context, events []trigger.Event) error {
	return f(ctx, events)
}

// LogNotifier writes one log line per triggered asset.
type LogNotifier struct {
	logger logrus.FieldLogger
}

func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, events []trigger.Event) error {
	for _, ev := range events {
		n.logger.WithFields(logrus.Fields{
			"asset_id":       ev.AssetID,
			"asset":          ev.Name,
			"value":          ev.Value.StringFixed(2),
			"triggered_date": ev.TriggeredDate,
		}).Info("asset triggered")
	}
	return nil
}

// Multi fans a batch out to several notifiers. Every notifier is called even
// when an earlier one fails; the failures are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, events []trigger.Event) error {
	var errs []error
	for i, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, events); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
