package domain

import (
	"errors"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyTriggered = errors.New("asset already triggered")
	ErrNotScheduled     = errors.New("asset not scheduled")
)

// LiquidAsset is a cash-like balance (checking, savings, brokerage cash).
type LiquidAsset struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	IsActive bool            `json:"isActive"`

	// Growth, both percent per year.
	AutoCompound  bool            `json:"autoCompound,omitempty"`
	APY           decimal.Decimal `json:"apy"`
	DividendYield decimal.Decimal `json:"dividendYield"`
}

// IlliquidAsset is property or equipment whose value can be scheduled to
// appear on a future date.
type IlliquidAsset struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	IsActive bool            `json:"isActive"`

	IsScheduled    bool             `json:"isScheduled,omitempty"`
	ScheduledDate  string           `json:"scheduledDate,omitempty"`
	ScheduledValue *decimal.Decimal `json:"scheduledValue,omitempty"`

	IsTriggered   bool   `json:"isTriggered,omitempty"`
	TriggeredDate string `json:"triggeredDate,omitempty"`

	LinkedExpenseID string `json:"linkedExpenseId,omitempty"`
}

// State derives the lifecycle position from the asset's flags.
func (a *IlliquidAsset) State() AssetState {
	switch {
	case a.IsTriggered:
		return AssetTriggered
	case a.IsScheduled:
		return AssetScheduled
	default:
		return AssetUnscheduled
	}
}

// Schedule seeds the asset into the scheduled state: dormant until date.
func (a *IlliquidAsset) Schedule(date string, value decimal.Decimal) error {
	if a.IsTriggered {
		return fmt.Errorf("scheduling asset %s: %w", a.ID, ErrAlreadyTriggered)
	}
	v := value
	a.IsScheduled = true
	a.IsActive = false
	a.ScheduledDate = date
	a.ScheduledValue = &v
	return nil
}

// Unschedule returns a scheduled, untriggered asset to the unscheduled state.
// Triggered assets keep their history.
func (a *IlliquidAsset) Unschedule() {
	if a.IsTriggered {
		return
	}
	a.IsScheduled = false
	a.ScheduledDate = ""
	a.ScheduledValue = nil
}

// Due reports whether a scheduled asset's date has arrived by today
// ("YYYY-MM-DD"). A malformed ScheduledDate is returned as an error.
func (a *IlliquidAsset) Due(today string) (bool, error) {
	if !a.IsScheduled || a.IsTriggered {
		return false, nil
	}
	d, err := calendar.ParseDate(a.ScheduledDate)
	if err != nil {
		return false, fmt.Errorf("asset %s: %w", a.ID, err)
	}
	return calendar.DateKey(d) <= today, nil
}

// Trigger performs the one-way scheduled -> triggered transition.
func (a *IlliquidAsset) Trigger(today string) error {
	if a.IsTriggered {
		return fmt.Errorf("triggering asset %s: %w", a.ID, ErrAlreadyTriggered)
	}
	if !a.IsScheduled {
		return fmt.Errorf("triggering asset %s: %w", a.ID, ErrNotScheduled)
	}
	a.IsTriggered = true
	a.IsActive = true
	a.TriggeredDate = today
	if a.ScheduledValue != nil {
		a.Value = *a.ScheduledValue
	}
	return nil
}
