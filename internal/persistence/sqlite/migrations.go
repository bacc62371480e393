package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// migration is one named, ordered schema change. Applied names are recorded
// in schema_migrations so reruns are no-ops.
type migration struct {
	name string
	stmt string
}

var migrations = []migration{
	{
		name: "0001_snapshot_meta",
		stmt: `CREATE TABLE IF NOT EXISTS snapshot_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			revision INTEGER NOT NULL,
			saved_at TEXT NOT NULL
		)`,
	},
	{
		name: "0002_people",
		stmt: `CREATE TABLE IF NOT EXISTS people (
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			is_adult INTEGER NOT NULL DEFAULT 0
		)`,
	},
	{
		name: "0003_chores",
		stmt: `CREATE TABLE IF NOT EXISTS chores (
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			task TEXT NOT NULL,
			assignee_ids TEXT NOT NULL DEFAULT '[]',
			priority TEXT NOT NULL DEFAULT 'Medium',
			due_date TEXT NOT NULL DEFAULT '',
			recurrence TEXT,
			notification_at TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
	{
		name: "0004_alarms",
		stmt: `CREATE TABLE IF NOT EXISTS alarms (
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			clock TEXT NOT NULL,
			label TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			repeat_days TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
	{
		name: "0005_timers",
		stmt: `CREATE TABLE IF NOT EXISTS timers (
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			remaining_seconds INTEGER NOT NULL,
			running INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
	},
	{
		name: "0006_groceries",
		stmt: `CREATE TABLE IF NOT EXISTS groceries (
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0
		)`,
	},
	{
		name: "0007_routines",
		stmt: `CREATE TABLE IF NOT EXISTS routines (
			position INTEGER NOT NULL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			steps TEXT NOT NULL DEFAULT '[]',
			days TEXT NOT NULL DEFAULT '[]'
		)`,
	},
	{
		name: "0008_ledger_keys",
		stmt: `CREATE TABLE IF NOT EXISTS ledger_keys (
			key TEXT PRIMARY KEY
		)`,
	},
}

// migrate applies all pending migrations in order.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE name = ?`, m.name).Scan(&applied)
		if err != nil {
			return fmt.Errorf("sqlite: check migration %s: %w", m.name, err)
		}
		if applied > 0 {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("sqlite: begin migration %s: %w", m.name, err)
		}
		if _, err := tx.ExecContext(ctx, m.stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: apply migration %s: %w", m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES (?)`, m.name); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: record migration %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("sqlite: commit migration %s: %w", m.name, err)
		}
	}
	return nil
}
