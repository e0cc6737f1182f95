package repository

import (
	"context"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

// SQLiteActiveIncomeRepo implements ActiveIncomeRepo using a SQLite database.
type SQLiteActiveIncomeRepo struct {
	db db.DBTX
}

func NewSQLiteActiveIncomeRepo(conn db.DBTX) *SQLiteActiveIncomeRepo {
	return &SQLiteActiveIncomeRepo{db: conn}
}

func (r *SQLiteActiveIncomeRepo) Create(ctx context.Context, e *domain.ActiveIncomeEntry, position int) error {
	query := `INSERT INTO active_incomes (id, source, amount, status, position) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Source, decimalToText(e.Amount), string(e.Status), position)
	if err != nil {
		return fmt.Errorf("inserting active income: %w", err)
	}
	return nil
}

func (r *SQLiteActiveIncomeRepo) List(ctx context.Context) ([]domain.ActiveIncomeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, source, amount, status FROM active_incomes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("listing active incomes: %w", err)
	}
	defer rows.Close()

	out := []domain.ActiveIncomeEntry{}
	for rows.Next() {
		var e domain.ActiveIncomeEntry
		var amount, status string
		if err := rows.Scan(&e.ID, &e.Source, &amount, &status); err != nil {
			return nil, fmt.Errorf("scanning active income row: %w", err)
		}
		if e.Amount, err = parseDecimal(amount, "active_incomes.amount"); err != nil {
			return nil, err
		}
		e.Status = domain.IncomeStatus(status)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating active incomes: %w", err)
	}
	return out, nil
}

func (r *SQLiteActiveIncomeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_incomes`); err != nil {
		return fmt.Errorf("clearing active incomes: %w", err)
	}
	return nil
}

// SQLitePassiveIncomeRepo implements PassiveIncomeRepo using a SQLite database.
type SQLitePassiveIncomeRepo struct {
	db db.DBTX
}

func NewSQLitePassiveIncomeRepo(conn db.DBTX) *SQLitePassiveIncomeRepo {
	return &SQLitePassiveIncomeRepo{db: conn}
}

func (r *SQLitePassiveIncomeRepo) Create(ctx context.Context, e *domain.PassiveIncomeEntry, position int) error {
	query := `INSERT INTO passive_incomes (id, source, amount, status, use_schedule, start_date, end_date,
		auto_compound, apy, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Source,
		decimalToText(e.Amount),
		string(e.Status),
		boolToInt(e.UseSchedule),
		e.Schedule.StartDate,
		e.Schedule.EndDate,
		boolToInt(e.AutoCompound),
		decimalToText(e.APY),
		position,
	)
	if err != nil {
		return fmt.Errorf("inserting passive income: %w", err)
	}
	return nil
}

func (r *SQLitePassiveIncomeRepo) List(ctx context.Context) ([]domain.PassiveIncomeEntry, error) {
	query := `SELECT id, source, amount, status, use_schedule, start_date, end_date, auto_compound, apy
		FROM passive_incomes ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing passive incomes: %w", err)
	}
	defer rows.Close()

	out := []domain.PassiveIncomeEntry{}
	for rows.Next() {
		var e domain.PassiveIncomeEntry
		var amount, status, apy string
		var useSchedule, autoCompound int
		if err := rows.Scan(&e.ID, &e.Source, &amount, &status, &useSchedule,
			&e.Schedule.StartDate, &e.Schedule.EndDate, &autoCompound, &apy); err != nil {
			return nil, fmt.Errorf("scanning passive income row: %w", err)
		}
		if e.Amount, err = parseDecimal(amount, "passive_incomes.amount"); err != nil {
			return nil, err
		}
		if e.APY, err = parseDecimal(apy, "passive_incomes.apy"); err != nil {
			return nil, err
		}
		e.Status = domain.IncomeStatus(status)
		e.UseSchedule = intToBool(useSchedule)
		e.AutoCompound = intToBool(autoCompound)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passive incomes: %w", err)
	}
	return out, nil
}

func (r *SQLitePassiveIncomeRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM passive_incomes`); err != nil {
		return fmt.Errorf("clearing passive incomes: %w", err)
	}
	return nil
}
