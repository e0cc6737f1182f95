package repository

import (
	"context"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// Every record list is returned in its stored position order, which is the
// order the projection iterates in.

type ActiveIncomeRepo interface {
	Create(ctx context.Context, e *domain.ActiveIncomeEntry, position int) error
	List(ctx context.Context) ([]domain.ActiveIncomeEntry, error)
	DeleteAll(ctx context.Context) error
}

type PassiveIncomeRepo interface {
	Create(ctx context.Context, e *domain.PassiveIncomeEntry, position int) error
	List(ctx context.Context) ([]domain.PassiveIncomeEntry, error)
	DeleteAll(ctx context.Context) error
}

type ExpenseRepo interface {
	Create(ctx context.Context, e *domain.Expense, position int) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	DeleteAll(ctx context.Context) error
}

type LiquidAssetRepo interface {
	Create(ctx context.Context, a *domain.LiquidAsset, position int) error
	List(ctx context.Context) ([]domain.LiquidAsset, error)
	DeleteAll(ctx context.Context) error
}

type IlliquidAssetRepo interface {
	Create(ctx context.Context, a *domain.IlliquidAsset, position int) error
	GetByID(ctx context.Context, id string) (*domain.IlliquidAsset, error)
	List(ctx context.Context) ([]domain.IlliquidAsset, error)
	// ListPending returns scheduled, untriggered assets.
	ListPending(ctx context.Context) ([]domain.IlliquidAsset, error)
	Update(ctx context.Context, a *domain.IlliquidAsset) error
	DeleteAll(ctx context.Context) error
}

// FinancialDataRepo reads and replaces the whole aggregate. ReplaceAll must
// run inside a transaction to be atomic.
type FinancialDataRepo interface {
	Load(ctx context.Context) (*domain.FinancialData, error)
	ReplaceAll(ctx context.Context, data *domain.FinancialData) error
}

type SyncStateRepo interface {
	// LastSync returns nil when the user has never synced.
	LastSync(ctx context.Context, userID string) (*time.Time, error)
	SetLastSync(ctx context.Context, userID string, at time.Time) error
}
