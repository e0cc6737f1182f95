package cloudsync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/lib/pq"
)

// undefinedTable is the Postgres SQLSTATE for a missing relation.
const undefinedTable = "42P01"

const snapshotSchema = `CREATE TABLE IF NOT EXISTS financial_snapshots (
	user_id    TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresRemote stores one JSONB snapshot per user. updated_at is always set
// by the database clock.
type PostgresRemote struct {
	db *sql.DB
}

func NewPostgresRemote(db *sql.DB) *PostgresRemote {
	return &PostgresRemote{db: db}
}

// OpenPostgres connects with a lib/pq DSN and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRemote, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening remote database: %w", err)
	}
	conn.SetMaxOpenConns(4)
	conn.SetConnMaxIdleTime(5 * time.Minute)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging remote database: %w", err)
	}
	return NewPostgresRemote(conn), nil
}

func (r *PostgresRemote) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the snapshot table if it does not exist.
func (r *PostgresRemote) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("creating snapshot table: %w", err)
	}
	return nil
}

func (r *PostgresRemote) Latest(ctx context.Context, userID string) (Snapshot, error) {
	var (
		raw []byte
		ts  time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT data, updated_at FROM financial_snapshots WHERE user_id = $1`, userID,
	).Scan(&raw, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("user %s: %w", userID, ErrNoSnapshot)
	}
	if err != nil {
		return Snapshot{}, describePQ(err)
	}

	var data domain.FinancialData
	if err := json.Unmarshal(raw, &data); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	data.LastSync = nil
	return Snapshot{Data: data, ServerTimestamp: ts.UTC()}, nil
}

func (r *PostgresRemote) Upsert(ctx context.Context, userID string, data *domain.FinancialData) (time.Time, error) {
	stored := *data
	stored.LastSync = nil
	raw, err := json.Marshal(&stored)
	if err != nil {
		return time.Time{}, fmt.Errorf("encoding snapshot: %w", err)
	}

	var ts time.Time
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO financial_snapshots (user_id, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		 RETURNING updated_at`,
		userID, raw,
	).Scan(&ts)
	if err != nil {
		return time.Time{}, describePQ(err)
	}
	return ts.UTC(), nil
}

func describePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == undefinedTable {
			return fmt.Errorf("snapshot table missing, run EnsureSchema: %w", err)
		}
		return fmt.Errorf("remote %s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return fmt.Errorf("querying remote: %w", err)
}
