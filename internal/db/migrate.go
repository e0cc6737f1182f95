package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS active_incomes (
		id       TEXT PRIMARY KEY,
		source   TEXT NOT NULL DEFAULT '',
		amount   TEXT NOT NULL DEFAULT '0',
		status   TEXT NOT NULL DEFAULT 'active'
		         CHECK(status IN ('active','inactive')),
		position INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS passive_incomes (
		id            TEXT PRIMARY KEY,
		source        TEXT NOT NULL DEFAULT '',
		amount        TEXT NOT NULL DEFAULT '0',
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','inactive','pending')),
		use_schedule  INTEGER NOT NULL DEFAULT 0,
		start_date    TEXT NOT NULL DEFAULT '',
		end_date      TEXT NOT NULL DEFAULT '',
		auto_compound INTEGER NOT NULL DEFAULT 0,
		apy           TEXT NOT NULL DEFAULT '0',
		position      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_passive_incomes_position ON passive_incomes(position)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id                       TEXT PRIMARY KEY,
		name                     TEXT NOT NULL DEFAULT '',
		amount                   TEXT NOT NULL DEFAULT '0',
		category                 TEXT NOT NULL DEFAULT '',
		type                     TEXT NOT NULL
		                         CHECK(type IN ('recurring','variable')),
		status                   TEXT NOT NULL DEFAULT 'active'
		                         CHECK(status IN ('active','inactive')),
		frequency                TEXT NOT NULL DEFAULT ''
		                         CHECK(frequency IN ('','monthly','yearly')),
		day                      INTEGER NOT NULL DEFAULT 0,
		trigger_month            INTEGER NOT NULL DEFAULT 0,
		specific_date            TEXT NOT NULL DEFAULT '',
		use_schedule             INTEGER NOT NULL DEFAULT 0,
		start_date               TEXT NOT NULL DEFAULT '',
		end_date                 TEXT NOT NULL DEFAULT '',
		linked_illiquid_asset_id TEXT NOT NULL DEFAULT '',
		position                 INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_position ON expenses(position)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_linked_asset ON expenses(linked_illiquid_asset_id) WHERE linked_illiquid_asset_id != ''`,

	`CREATE TABLE IF NOT EXISTS liquid_assets (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		value          TEXT NOT NULL DEFAULT '0',
		is_active      INTEGER NOT NULL DEFAULT 1,
		auto_compound  INTEGER NOT NULL DEFAULT 0,
		apy            TEXT NOT NULL DEFAULT '0',
		dividend_yield TEXT NOT NULL DEFAULT '0',
		position       INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS illiquid_assets (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL DEFAULT '',
		value             TEXT NOT NULL DEFAULT '0',
		is_active         INTEGER NOT NULL DEFAULT 1,
		is_scheduled      INTEGER NOT NULL DEFAULT 0,
		scheduled_date    TEXT NOT NULL DEFAULT '',
		scheduled_value   TEXT,
		is_triggered      INTEGER NOT NULL DEFAULT 0,
		triggered_date    TEXT NOT NULL DEFAULT '',
		linked_expense_id TEXT NOT NULL DEFAULT '',
		position          INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_illiquid_assets_pending ON illiquid_assets(scheduled_date) WHERE is_scheduled = 1 AND is_triggered = 0`,

	`CREATE TABLE IF NOT EXISTS sync_state (
		user_id    TEXT PRIMARY KEY,
		last_sync  TEXT,
		updated_at TEXT NOT NULL
	)`,
}
