// Package trigger activates scheduled illiquid assets once their date arrives.
//
// Sweep is the pure transition pass; Sweeper runs a sweep function on start
// and then on a cron schedule.
package trigger

import (
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Event describes one asset that transitioned to triggered during a sweep.
type Event struct {
	AssetID       string          `json:"assetId"`
	Name          string          `json:"name"`
	Value         decimal.Decimal `json:"value"`
	TriggeredDate string          `json:"triggeredDate"`
}

// SkipReason records an asset the sweep could not evaluate.
type SkipReason struct {
	AssetID       string `json:"assetId"`
	Name          string `json:"name"`
	ScheduledDate string `json:"scheduledDate"`
	Reason        string `json:"reason"`
}

// Result is the outcome of a sweep. Assets is a copy of the input with the
// transitions applied, in input order.
type Result struct {
	Assets    []domain.IlliquidAsset `json:"assets"`
	Triggered []Event                `json:"triggered"`
	Skipped   []SkipReason           `json:"skipped"`
}

// Changed reports whether any asset transitioned.
func (r Result) Changed() bool {
	return len(r.Triggered) > 0
}

// ChangedAssets returns the assets that transitioned in this sweep.
func (r Result) ChangedAssets() []domain.IlliquidAsset {
	if len(r.Triggered) == 0 {
		return nil
	}
	ids := make(map[string]struct{}, len(r.Triggered))
	for _, ev := range r.Triggered {
		ids[ev.AssetID] = struct{}{}
	}
	out := make([]domain.IlliquidAsset, 0, len(ids))
	for _, a := range r.Assets {
		if _, ok := ids[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Sweep evaluates every scheduled, untriggered asset against today
// ("YYYY-MM-DD") and triggers the ones whose date has arrived. Triggered
// assets are never re-evaluated, so sweeping the result again is a no-op. An
// asset with a malformed date is skipped without affecting the others. The
// input slice is not modified.
func Sweep(assets []domain.IlliquidAsset, today string) Result {
	res := Result{
		Assets:    make([]domain.IlliquidAsset, len(assets)),
		Triggered: []Event{},
		Skipped:   []SkipReason{},
	}
	copy(res.Assets, assets)

	for i := range res.Assets {
		a := &res.Assets[i]
		if a.State() != domain.AssetScheduled {
			continue
		}
		due, err := a.Due(today)
		if err != nil {
			res.Skipped = append(res.Skipped, SkipReason{
				AssetID:       a.ID,
				Name:          a.Name,
				ScheduledDate: a.ScheduledDate,
				Reason:        err.Error(),
			})
			continue
		}
		if !due {
			continue
		}
		if err := a.Trigger(today); err != nil {
			res.Skipped = append(res.Skipped, SkipReason{AssetID: a.ID, Name: a.Name, ScheduledDate: a.ScheduledDate, Reason: err.Error()})
			continue
		}
		res.Triggered = append(res.Triggered, Event{
			AssetID:       a.ID,
			Name:          a.Name,
			Value:         a.Value,
			TriggeredDate: a.TriggeredDate,
		})
	}
	return res
}
