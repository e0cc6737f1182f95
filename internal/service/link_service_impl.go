package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/calendar"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
)

type linkService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewLinkService(uow db.UnitOfWork, observers ...UseCaseObserver) LinkService {
	return &linkService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Link binds an expense to an illiquid asset. An expense with a specific date
// seeds the asset as scheduled for that date at the expense amount.
func (s *linkService) Link(ctx context.Context, expenseID, assetID string) (result *LinkResult, err error) {
	fields := map[string]any{"expense_id": expenseID, "asset_id": assetID}
	defer observe(ctx, s.observer, "link", time.Now(), fields, &err)

	if expenseID == "" || assetID == "" {
		return nil, fmt.Errorf("%w: expense and asset ids are required", ErrInvalidLink)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		expenses := repository.NewSQLiteExpenseRepo(tx)
		assets := repository.NewSQLiteIlliquidAssetRepo(tx)

		e, err := expenses.GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		a, err := assets.GetByID(ctx, assetID)
		if err != nil {
			return err
		}
		if e.LinkedIlliquidAssetID != "" && e.LinkedIlliquidAssetID != a.ID {
			return fmt.Errorf("%w: expense %s already linked to asset %s", ErrInvalidLink, e.ID, e.LinkedIlliquidAssetID)
		}
		before := *a
		if err := domain.LinkExpense(e, a); err != nil {
			if errors.Is(err, domain.ErrAssetLinkedElsewhere) {
				return fmt.Errorf("%w: %w", ErrInvalidLink, err)
			}
			return err
		}

		if err := expenses.Update(ctx, e); err != nil {
			return err
		}
		if err := assets.Update(ctx, a); err != nil {
			return err
		}
		result = &LinkResult{Expense: e, Asset: a, AssetChanged: assetDiffers(&before, a)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("linking expense %s to asset %s: %w", expenseID, assetID, err)
	}
	fields["asset_state"] = string(result.Asset.State())
	return result, nil
}

// Unlink clears the link from both sides. Unlinking an unlinked expense is a
// no-op.
func (s *linkService) Unlink(ctx context.Context, expenseID string) (result *LinkResult, err error) {
	fields := map[string]any{"expense_id": expenseID}
	defer observe(ctx, s.observer, "unlink", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		expenses := repository.NewSQLiteExpenseRepo(tx)
		assets := repository.NewSQLiteIlliquidAssetRepo(tx)

		e, err := expenses.GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		result = &LinkResult{Expense: e}
		if e.LinkedIlliquidAssetID == "" {
			return nil
		}

		a, err := assets.GetByID(ctx, e.LinkedIlliquidAssetID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if a == nil {
			domain.UnlinkExpense(e, nil)
			return expenses.Update(ctx, e)
		}

		before := *a
		domain.UnlinkExpense(e, a)
		if err := expenses.Update(ctx, e); err != nil {
			return err
		}
		if err := assets.Update(ctx, a); err != nil {
			return err
		}
		result.Asset = a
		result.AssetChanged = assetDiffers(&before, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unlinking expense %s: %w", expenseID, err)
	}
	return result, nil
}

// UpdateExpense persists e and moves the linked asset's scheduled date to
// match. Link fields on e are ignored; use Link and Unlink to change them.
func (s *linkService) UpdateExpense(ctx context.Context, e *domain.Expense) (result *LinkResult, err error) {
	fields := map[string]any{"expense_id": e.ID}
	defer observe(ctx, s.observer, "update-expense", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stored, err := repository.NewSQLiteExpenseRepo(tx).GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		e.LinkedIlliquidAssetID = stored.LinkedIlliquidAssetID
		result, err = s.saveExpense(ctx, tx, e)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating expense %s: %w", e.ID, err)
	}
	fields["asset_changed"] = result.AssetChanged
	return result, nil
}

// SetExpenseDate sets the specific date of an expense and propagates it to a
// linked asset.
func (s *linkService) SetExpenseDate(ctx context.Context, expenseID, date string) (result *LinkResult, err error) {
	fields := map[string]any{"expense_id": expenseID, "date": date}
	defer observe(ctx, s.observer, "set-expense-date", time.Now(), fields, &err)

	if _, perr := calendar.ParseDate(date); perr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDate, perr)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		e, err := repository.NewSQLiteExpenseRepo(tx).GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		e.SpecificDate = date
		result, err = s.saveExpense(ctx, tx, e)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("setting date on expense %s: %w", expenseID, err)
	}
	fields["asset_changed"] = result.AssetChanged
	return result, nil
}

func (s *linkService) saveExpense(ctx context.Context, tx db.DBTX, e *domain.Expense) (*LinkResult, error) {
	if err := repository.NewSQLiteExpenseRepo(tx).Update(ctx, e); err != nil {
		return nil, err
	}
	result := &LinkResult{Expense: e}
	if e.LinkedIlliquidAssetID == "" {
		return result, nil
	}

	assets := repository.NewSQLiteIlliquidAssetRepo(tx)
	a, err := assets.GetByID(ctx, e.LinkedIlliquidAssetID)
	if errors.Is(err, repository.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Asset = a
	if domain.PropagateSchedule(e, a) {
		if err := assets.Update(ctx, a); err != nil {
			return nil, err
		}
		result.AssetChanged = true
	}
	return result, nil
}

func assetDiffers(before, after *domain.IlliquidAsset) bool {
	if before.IsScheduled != after.IsScheduled || before.IsActive != after.IsActive ||
		before.ScheduledDate != after.ScheduledDate || before.LinkedExpenseID != after.LinkedExpenseID {
		return true
	}
	if (before.ScheduledValue == nil) != (after.ScheduledValue == nil) {
		return true
	}
	return before.ScheduledValue != nil && !before.ScheduledValue.Equal(*after.ScheduledValue)
}
