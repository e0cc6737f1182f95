package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cloudsync"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/importer"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/projection"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
)

var (
	ErrInvalidLink    = errors.New("invalid link")
	ErrInvalidHorizon = errors.New("invalid horizon")
	ErrInvalidDate    = errors.New("invalid date")
)

// ImportResult holds the outcome of a financial data import.
type ImportResult struct {
	ActiveIncomeCount   int
	PassiveIncomeCount  int
	ExpenseCount        int
	LiquidAssetCount    int
	IlliquidAssetCount  int
	ReplacedRecordCount int
}

// Total is the number of records written.
func (r *ImportResult) Total() int {
	return r.ActiveIncomeCount + r.PassiveIncomeCount + r.ExpenseCount +
		r.LiquidAssetCount + r.IlliquidAssetCount
}

// AssetList is the asset view served to collaborators.
type AssetList struct {
	Liquid   []domain.LiquidAsset   `json:"liquid"`
	Illiquid []domain.IlliquidAsset `json:"illiquid"`
}

type RecordService interface {
	Load(ctx context.Context) (*domain.FinancialData, error)
	Assets(ctx context.Context) (*AssetList, error)
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
	Export(ctx context.Context, w io.Writer) error
}

// Projection bundles the snapshots and chart markers computed from one
// consistent read with one asOf.
type Projection struct {
	AsOf      time.Time                    `json:"asOf"`
	Horizon   int                          `json:"horizon"`
	Snapshots []projection.MonthlySnapshot `json:"snapshots"`
	Markers   []projection.MarkerEntry     `json:"markers"`
}

type ProjectionService interface {
	Project(ctx context.Context, horizon int) (*Projection, error)
	Markers(ctx context.Context, horizon int) ([]projection.MarkerEntry, error)
	Detail(ctx context.Context, month int) (*projection.MonthDetail, error)
}

// LinkResult carries the records a link operation wrote. Asset is nil when
// the expense has no linked asset.
type LinkResult struct {
	Expense      *domain.Expense       `json:"expense"`
	Asset        *domain.IlliquidAsset `json:"asset,omitempty"`
	AssetChanged bool                  `json:"assetChanged"`
}

type LinkService interface {
	Link(ctx context.Context, expenseID, assetID string) (*LinkResult, error)
	Unlink(ctx context.Context, expenseID string) (*LinkResult, error)
	UpdateExpense(ctx context.Context, e *domain.Expense) (*LinkResult, error)
	SetExpenseDate(ctx context.Context, expenseID, date string) (*LinkResult, error)
}

type TriggerService interface {
	Sweep(ctx context.Context, now time.Time) (*trigger.Result, error)
}

type SyncService interface {
	Push(ctx context.Context) (time.Time, error)
	Pull(ctx context.Context) (*domain.FinancialData, error)
	Status(ctx context.Context) (cloudsync.Status, error)
}
