package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/notify"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
	"github.com/sirupsen/logrus"
)

type triggerService struct {
	uow      db.UnitOfWork
	notifier notify.Notifier
	logger   logrus.FieldLogger
	observer UseCaseObserver
}

func NewTriggerService(uow db.UnitOfWork, notifier notify.Notifier, logger logrus.FieldLogger, observers ...UseCaseObserver) TriggerService {
	return &triggerService{
		uow:      uow,
		notifier: notifier,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Sweep activates every scheduled asset whose date has arrived by now's
// calendar day. Transitions are committed together before a single batched
// notification goes out; nothing is sent when no asset changed.
func (s *triggerService) Sweep(ctx context.Context, now time.Time) (result *trigger.Result, err error) {
	today := calendar.DateKey(now)
	fields := map[string]any{"today": today}
	defer observe(ctx, s.observer, "sweep", time.Now(), fields, &err)

	var res trigger.Result
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		assets := repository.NewSQLiteIlliquidAssetRepo(tx)
		pending, err := assets.ListPending(ctx)
		if err != nil {
			return err
		}
		res = trigger.Sweep(pending, today)
		for _, a := range res.ChangedAssets() {
			if err := assets.Update(ctx, &a); err != nil {
				return fmt.Errorf("saving asset %s: %w", a.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sweeping assets: %w", err)
	}

	for _, skip := range res.Skipped {
		s.logger.WithFields(logrus.Fields{
			"asset_id":       skip.AssetID,
			"asset":          skip.Name,
			"scheduled_date": skip.ScheduledDate,
		}).Warn("skipping asset: " + skip.Reason)
	}
	fields["triggered"] = len(res.Triggered)
	fields["skipped"] = len(res.Skipped)

	if !res.Changed() || s.notifier == nil {
		return &res, nil
	}
	if err = s.notifier.Notify(ctx, res.Triggered); err != nil {
		return &res, fmt.Errorf("notifying triggered assets: %w", err)
	}
	return &res, nil
}
