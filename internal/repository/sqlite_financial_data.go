package repository

import (
	"context"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// SQLiteFinancialDataRepo assembles the aggregate from the per-entity tables.
// Construct it on a transaction to get a consistent snapshot or an atomic
// replace.
type SQLiteFinancialDataRepo struct {
	userID   string
	active   *SQLiteActiveIncomeRepo
	passive  *SQLitePassiveIncomeRepo
	expenses *SQLiteExpenseRepo
	liquid   *SQLiteLiquidAssetRepo
	illiquid *SQLiteIlliquidAssetRepo
	sync     *SQLiteSyncStateRepo
}

func NewSQLiteFinancialDataRepo(conn db.DBTX, userID string) *SQLiteFinancialDataRepo {
	return &SQLiteFinancialDataRepo{
		userID:   userID,
		active:   NewSQLiteActiveIncomeRepo(conn),
		passive:  NewSQLitePassiveIncomeRepo(conn),
		expenses: NewSQLiteExpenseRepo(conn),
		liquid:   NewSQLiteLiquidAssetRepo(conn),
		illiquid: NewSQLiteIlliquidAssetRepo(conn),
		sync:     NewSQLiteSyncStateRepo(conn),
	}
}

func (r *SQLiteFinancialDataRepo) Load(ctx context.Context) (*domain.FinancialData, error) {
	var (
		data domain.FinancialData
		err  error
	)
	if data.ActiveIncome, err = r.active.List(ctx); err != nil {
		return nil, err
	}
	if data.PassiveIncome, err = r.passive.List(ctx); err != nil {
		return nil, err
	}
	if data.Expenses, err = r.expenses.List(ctx); err != nil {
		return nil, err
	}
	if data.LiquidAssets, err = r.liquid.List(ctx); err != nil {
		return nil, err
	}
	if data.IlliquidAssets, err = r.illiquid.List(ctx); err != nil {
		return nil, err
	}
	if data.LastSync, err = r.sync.LastSync(ctx, r.userID); err != nil {
		return nil, err
	}
	return &data, nil
}

// ReplaceAll deletes every record and writes data in slice order. LastSync is
// only written when data carries one.
func (r *SQLiteFinancialDataRepo) ReplaceAll(ctx context.Context, data *domain.FinancialData) error {
	for _, deleteAll := range []func(context.Context) error{
		r.active.DeleteAll, r.passive.DeleteAll, r.expenses.DeleteAll,
		r.liquid.DeleteAll, r.illiquid.DeleteAll,
	} {
		if err := deleteAll(ctx); err != nil {
			return err
		}
	}

	for i := range data.ActiveIncome {
		if err := r.active.Create(ctx, &data.ActiveIncome[i], i); err != nil {
			return fmt.Errorf("active income %d: %w", i, err)
		}
	}
	for i := range data.PassiveIncome {
		if err := r.passive.Create(ctx, &data.PassiveIncome[i], i); err != nil {
			return fmt.Errorf("passive income %d: %w", i, err)
		}
	}
	for i := range data.Expenses {
		if err := r.expenses.Create(ctx, &data.Expenses[i], i); err != nil {
			return fmt.Errorf("expense %d: %w", i, err)
		}
	}
	for i := range data.LiquidAssets {
		if err := r.liquid.Create(ctx, &data.LiquidAssets[i], i); err != nil {
			return fmt.Errorf("liquid asset %d: %w", i, err)
		}
	}
	for i := range data.IlliquidAssets {
		if err := r.illiquid.Create(ctx, &data.IlliquidAssets[i], i); err != nil {
			return fmt.Errorf("illiquid asset %d: %w", i, err)
		}
	}
	if data.LastSync != nil {
		if err := r.sync.SetLastSync(ctx, r.userID, *data.LastSync); err != nil {
			return err
		}
	}
	return nil
}
