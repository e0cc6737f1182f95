package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
)

const expenseColumns = `id, name, amount, category, type, status, frequency, day, trigger_month,
	specific_date, use_schedule, start_date, end_date, linked_illiquid_asset_id`

// SQLiteExpenseRepo implements ExpenseRepo using a SQLite database.
type SQLiteExpenseRepo struct {
	db db.DBTX
}

func NewSQLiteExpenseRepo(conn db.DBTX) *SQLiteExpenseRepo {
	return &SQLiteExpenseRepo{db: conn}
}

func (r *SQLiteExpenseRepo) Create(ctx context.Context, e *domain.Expense, position int) error {
	query := `INSERT INTO expenses (` + expenseColumns + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		decimalToText(e.Amount),
		e.Category,
		string(e.Type),
		string(e.Status),
		string(e.Frequency),
		e.Day,
		e.TriggerMonth,
		e.SpecificDate,
		boolToInt(e.UseSchedule),
		e.StartDate,
		e.EndDate,
		e.LinkedIlliquidAssetID,
		position,
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *SQLiteExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("expense %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	out := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteExpenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET name = ?, amount = ?, category = ?, type = ?, status = ?, frequency = ?,
		day = ?, trigger_month = ?, specific_date = ?, use_schedule = ?, start_date = ?, end_date = ?,
		linked_illiquid_asset_id = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Name,
		decimalToText(e.Amount),
		e.Category,
		string(e.Type),
		string(e.Status),
		string(e.Frequency),
		e.Day,
		e.TriggerMonth,
		e.SpecificDate,
		boolToInt(e.UseSchedule),
		e.StartDate,
		e.EndDate,
		e.LinkedIlliquidAssetID,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return rowsAffectedOrNotFound(res, "expense "+e.ID)
}

func (r *SQLiteExpenseRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}
	return nil
}

// scanExpense returns sql.ErrNoRows unwrapped so GetByID can map it.
func scanExpense(s rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	var amount, typ, status, frequency string
	var useSchedule int
	err := s.Scan(
		&e.ID, &e.Name, &amount, &e.Category,
		&typ, &status, &frequency,
		&e.Day, &e.TriggerMonth, &e.SpecificDate,
		&useSchedule, &e.StartDate, &e.EndDate,
		&e.LinkedIlliquidAssetID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning expense: %w", err)
	}
	if e.Amount, err = parseDecimal(amount, "expenses.amount"); err != nil {
		return nil, err
	}
	e.Type = domain.ExpenseType(typ)
	e.Status = domain.ExpenseStatus(status)
	e.Frequency = domain.Frequency(frequency)
	e.UseSchedule = intToBool(useSchedule)
	return &e, nil
}
