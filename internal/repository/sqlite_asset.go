package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// SQLiteLiquidAssetRepo implements LiquidAssetRepo using a SQLite database.
type SQLiteLiquidAssetRepo struct {
	db db.DBTX
}

func NewSQLiteLiquidAssetRepo(conn db.DBTX) *SQLiteLiquidAssetRepo {
	return &SQLiteLiquidAssetRepo{db: conn}
}

func (r *SQLiteLiquidAssetRepo) Create(ctx context.Context, a *domain.LiquidAsset, position int) error {
	query := `INSERT INTO liquid_assets (id, name, value, is_active, auto_compound, apy, dividend_yield, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		decimalToText(a.Value),
		boolToInt(a.IsActive),
		boolToInt(a.AutoCompound),
		decimalToText(a.APY),
		decimalToText(a.DividendYield),
		position,
	)
	if err != nil {
		return fmt.Errorf("inserting liquid asset: %w", err)
	}
	return nil
}

func (r *SQLiteLiquidAssetRepo) List(ctx context.Context) ([]domain.LiquidAsset, error) {
	query := `SELECT id, name, value, is_active, auto_compound, apy, dividend_yield
		FROM liquid_assets ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing liquid assets: %w", err)
	}
	defer rows.Close()

	out := []domain.LiquidAsset{}
	for rows.Next() {
		var a domain.LiquidAsset
		var value, apy, yield string
		var isActive, autoCompound int
		if err := rows.Scan(&a.ID, &a.Name, &value, &isActive, &autoCompound, &apy, &yield); err != nil {
			return nil, fmt.Errorf("scanning liquid asset row: %w", err)
		}
		if a.Value, err = parseDecimal(value, "liquid_assets.value"); err != nil {
			return nil, err
		}
		if a.APY, err = parseDecimal(apy, "liquid_assets.apy"); err != nil {
			return nil, err
		}
		if a.DividendYield, err = parseDecimal(yield, "liquid_assets.dividend_yield"); err != nil {
			return nil, err
		}
		a.IsActive = intToBool(isActive)
		a.AutoCompound = intToBool(autoCompound)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating liquid assets: %w", err)
	}
	return out, nil
}

func (r *SQLiteLiquidAssetRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM liquid_assets`); err != nil {
		return fmt.Errorf("clearing liquid assets: %w", err)
	}
	return nil
}

const illiquidColumns = `id, name, value, is_active, is_scheduled, scheduled_date, scheduled_value,
	is_triggered, triggered_date, linked_expense_id`

// SQLiteIlliquidAssetRepo implements IlliquidAssetRepo using a SQLite database.
type SQLiteIlliquidAssetRepo struct {
	db db.DBTX
}

func NewSQLiteIlliquidAssetRepo(conn db.DBTX) *SQLiteIlliquidAssetRepo {
	return &SQLiteIlliquidAssetRepo{db: conn}
}

func (r *SQLiteIlliquidAssetRepo) Create(ctx context.Context, a *domain.IlliquidAsset, position int) error {
	query := `INSERT INTO illiquid_assets (` + illiquidColumns + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		decimalToText(a.Value),
		boolToInt(a.IsActive),
		boolToInt(a.IsScheduled),
		a.ScheduledDate,
		nullableDecimalToValue(a.ScheduledValue),
		boolToInt(a.IsTriggered),
		a.TriggeredDate,
		a.LinkedExpenseID,
		position,
	)
	if err != nil {
		return fmt.Errorf("inserting illiquid asset: %w", err)
	}
	return nil
}

func (r *SQLiteIlliquidAssetRepo) GetByID(ctx context.Context, id string) (*domain.IlliquidAsset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+illiquidColumns+` FROM illiquid_assets WHERE id = ?`, id)
	a, err := scanIlliquidAsset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("illiquid asset %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteIlliquidAssetRepo) List(ctx context.Context) ([]domain.IlliquidAsset, error) {
	return r.list(ctx, `SELECT `+illiquidColumns+` FROM illiquid_assets ORDER BY position, id`)
}

func (r *SQLiteIlliquidAssetRepo) ListPending(ctx context.Context) ([]domain.IlliquidAsset, error) {
	return r.list(ctx, `SELECT `+illiquidColumns+` FROM illiquid_assets
		WHERE is_scheduled = 1 AND is_triggered = 0 ORDER BY position, id`)
}

func (r *SQLiteIlliquidAssetRepo) list(ctx context.Context, query string) ([]domain.IlliquidAsset, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing illiquid assets: %w", err)
	}
	defer rows.Close()

	out := []domain.IlliquidAsset{}
	for rows.Next() {
		a, err := scanIlliquidAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating illiquid assets: %w", err)
	}
	return out, nil
}

func (r *SQLiteIlliquidAssetRepo) Update(ctx context.Context, a *domain.IlliquidAsset) error {
	query := `UPDATE illiquid_assets SET name = ?, value = ?, is_active = ?, is_scheduled = ?,
		scheduled_date = ?, scheduled_value = ?, is_triggered = ?, triggered_date = ?, linked_expense_id = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Name,
		decimalToText(a.Value),
		boolToInt(a.IsActive),
		boolToInt(a.IsScheduled),
		a.ScheduledDate,
		nullableDecimalToValue(a.ScheduledValue),
		boolToInt(a.IsTriggered),
		a.TriggeredDate,
		a.LinkedExpenseID,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating illiquid asset: %w", err)
	}
	return rowsAffectedOrNotFound(res, "illiquid asset "+a.ID)
}

func (r *SQLiteIlliquidAssetRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM illiquid_assets`); err != nil {
		return fmt.Errorf("clearing illiquid assets: %w", err)
	}
	return nil
}

func scanIlliquidAsset(s rowScanner) (*domain.IlliquidAsset, error) {
	var a domain.IlliquidAsset
	var value string
	var scheduledValue sql.NullString
	var isActive, isScheduled, isTriggered int
	err := s.Scan(
		&a.ID, &a.Name, &value, &isActive,
		&isScheduled, &a.ScheduledDate, &scheduledValue,
		&isTriggered, &a.TriggeredDate, &a.LinkedExpenseID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning illiquid asset: %w", err)
	}
	if a.Value, err = parseDecimal(value, "illiquid_assets.value"); err != nil {
		return nil, err
	}
	if a.ScheduledValue, err = parseNullableDecimal(scheduledValue, "illiquid_assets.scheduled_value"); err != nil {
		return nil, err
	}
	a.IsActive = intToBool(isActive)
	a.IsScheduled = intToBool(isScheduled)
	a.IsTriggered = intToBool(isTriggered)
	return &a, nil
}
