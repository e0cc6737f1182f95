package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
)

// SQLiteSyncStateRepo implements SyncStateRepo using a SQLite database.
type SQLiteSyncStateRepo struct {
	db db.DBTX
}

func NewSQLiteSyncStateRepo(conn db.DBTX) *SQLiteSyncStateRepo {
	return &SQLiteSyncStateRepo{db: conn}
}

func (r *SQLiteSyncStateRepo) LastSync(ctx context.Context, userID string) (*time.Time, error) {
	var lastSync sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT last_sync FROM sync_state WHERE user_id = ?`, userID).Scan(&lastSync)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sync state: %w", err)
	}
	return parseNullableTime(lastSync, time.RFC3339Nano), nil
}

// SetLastSync stores the server-issued timestamp for userID.
func (r *SQLiteSyncStateRepo) SetLastSync(ctx context.Context, userID string, at time.Time) error {
	query := `INSERT INTO sync_state (user_id, last_sync, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET last_sync = excluded.last_sync, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, userID, nullableTimeToString(&at, time.RFC3339Nano), nowUTC())
	if err != nil {
		return fmt.Errorf("writing sync state: %w", err)
	}
	return nil
}
