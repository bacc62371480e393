// Package sqlite archives household snapshots in a SQLite database. The
// running process works entirely against the in-memory store; this package
// only loads one snapshot at boot and writes one back on a cadence and at
// shutdown, keeping database I/O out of the tick path.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/household-hub/internal/persistence"
	_ "modernc.org/sqlite"
)

// timestampLayout serializes instants in snapshot rows.
const timestampLayout = time.RFC3339Nano

// Store wraps a SQLite database holding at most one snapshot.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite: dsn is required")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", dsn, err)
	}
	// Snapshot writes rewrite every table; concurrent writers only conflict.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", dsn, err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable WAL: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot replaces the stored snapshot in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot persistence.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin snapshot save: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"people", "chores", "alarms", "timers", "groceries", "routines", "ledger_keys"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: clear %s: %w", table, err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, revision, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET revision = excluded.revision, saved_at = excluded.saved_at`,
		snapshot.Revision, snapshot.SavedAt.UTC().Format(timestampLayout),
	); err != nil {
		return fmt.Errorf("sqlite: save snapshot meta: %w", err)
	}

	for i, person := range snapshot.People {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO people (position, id, name, avatar, is_adult) VALUES (?, ?, ?, ?, ?)`,
			i, person.ID, person.Name, person.Avatar, person.IsAdult,
		); err != nil {
			return fmt.Errorf("sqlite: save person %s: %w", person.ID, err)
		}
	}

	for i, chore := range snapshot.Chores {
		assignees, marshalErr := json.Marshal(chore.AssigneeIDs)
		if marshalErr != nil {
			return fmt.Errorf("sqlite: encode chore %s assignees: %w", chore.ID, marshalErr)
		}
		var rule sql.NullString
		if chore.Recurrence != nil {
			encoded, marshalErr := json.Marshal(chore.Recurrence)
			if marshalErr != nil {
				return fmt.Errorf("sqlite: encode chore %s recurrence: %w", chore.ID, marshalErr)
			}
			rule = sql.NullString{String: string(encoded), Valid: true}
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO chores (position, id, task, assignee_ids, priority, due_date, recurrence,
				notification_at, completed, completed_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, chore.ID, chore.Task, string(assignees), chore.Priority, chore.DueDate, rule,
			chore.NotificationAt, chore.Completed, chore.CompletedAt,
			chore.CreatedAt.UTC().Format(timestampLayout), chore.UpdatedAt.UTC().Format(timestampLayout),
		); err != nil {
			return fmt.Errorf("sqlite: save chore %s: %w", chore.ID, err)
		}
	}

	for i, alarm := range snapshot.Alarms {
		repeatDays, marshalErr := json.Marshal(alarm.RepeatDays)
		if marshalErr != nil {
			return fmt.Errorf("sqlite: encode alarm %s repeat days: %w", alarm.ID, marshalErr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO alarms (position, id, clock, label, enabled, repeat_days, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, alarm.ID, alarm.Time, alarm.Label, alarm.Enabled, string(repeatDays),
			alarm.CreatedAt.UTC().Format(timestampLayout), alarm.UpdatedAt.UTC().Format(timestampLayout),
		); err != nil {
			return fmt.Errorf("sqlite: save alarm %s: %w", alarm.ID, err)
		}
	}

	for i, timer := range snapshot.Timers {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO timers (position, id, label, duration_seconds, remaining_seconds, running, finished, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, timer.ID, timer.Label, timer.DurationSeconds, timer.RemainingSeconds,
			timer.Running, timer.Finished, timer.CreatedAt.UTC().Format(timestampLayout),
		); err != nil {
			return fmt.Errorf("sqlite: save timer %s: %w", timer.ID, err)
		}
	}

	for i, item := range snapshot.Groceries {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO groceries (position, id, name, completed) VALUES (?, ?, ?, ?)`,
			i, item.ID, item.Name, item.Completed,
		); err != nil {
			return fmt.Errorf("sqlite: save grocery item %s: %w", item.ID, err)
		}
	}

	for i, routine := range snapshot.Routines {
		steps, marshalErr := json.Marshal(routine.Steps)
		if marshalErr != nil {
			return fmt.Errorf("sqlite: encode routine %s steps: %w", routine.ID, marshalErr)
		}
		days, marshalErr := json.Marshal(routine.Days)
		if marshalErr != nil {
			return fmt.Errorf("sqlite: encode routine %s days: %w", routine.ID, marshalErr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO routines (position, id, name, icon, steps, days) VALUES (?, ?, ?, ?, ?, ?)`,
			i, routine.ID, routine.Name, routine.Icon, string(steps), string(days),
		); err != nil {
			return fmt.Errorf("sqlite: save routine %s: %w", routine.ID, err)
		}
	}

	for _, key := range snapshot.LedgerKeys {
		if _, err = tx.ExecContext(ctx, `INSERT INTO ledger_keys (key) VALUES (?)`, key); err != nil {
			return fmt.Errorf("sqlite: save ledger key %s: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the stored snapshot. A fresh database reports
// persistence.ErrNotFound.
func (s *Store) LoadSnapshot(ctx context.Context) (persistence.Snapshot, error) {
	var snapshot persistence.Snapshot
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT revision, saved_at FROM snapshot_meta WHERE id = 1`).
		Scan(&snapshot.Revision, &savedAt)
	if err == sql.ErrNoRows {
		return persistence.Snapshot{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Snapshot{}, fmt.Errorf("sqlite: load snapshot meta: %w", err)
	}
	snapshot.SavedAt, err = time.Parse(timestampLayout, savedAt)
	if err != nil {
		return persistence.Snapshot{}, fmt.Errorf("sqlite: parse saved_at: %w", err)
	}

	if snapshot.People, err = s.loadPeople(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Chores, err = s.loadChores(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Alarms, err = s.loadAlarms(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Timers, err = s.loadTimers(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Groceries, err = s.loadGroceries(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Routines, err = s.loadRoutines(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.LedgerKeys, err = s.loadLedgerKeys(ctx); err != nil {
		return persistence.Snapshot{}, err
	}
	return snapshot, nil
}

func (s *Store) loadPeople(ctx context.Context) ([]persistence.PersonRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, avatar, is_adult FROM people ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load people: %w", err)
	}
	defer rows.Close()

	var people []persistence.PersonRecord
	for rows.Next() {
		var person persistence.PersonRecord
		if err := rows.Scan(&person.ID, &person.Name, &person.Avatar, &person.IsAdult); err != nil {
			return nil, fmt.Errorf("sqlite: scan person: %w", err)
		}
		people = append(people, person)
	}
	return people, rows.Err()
}

func (s *Store) loadChores(ctx context.Context) ([]persistence.ChoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task, assignee_ids, priority, due_date, recurrence, notification_at,
			completed, completed_at, created_at, updated_at
		 FROM chores ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load chores: %w", err)
	}
	defer rows.Close()

	var chores []persistence.ChoreRecord
	for rows.Next() {
		var chore persistence.ChoreRecord
		var assignees string
		var rule sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&chore.ID, &chore.Task, &assignees, &chore.Priority, &chore.DueDate,
			&rule, &chore.NotificationAt, &chore.Completed, &chore.CompletedAt, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan chore: %w", err)
		}
		if err := json.Unmarshal([]byte(assignees), &chore.AssigneeIDs); err != nil {
			return nil, fmt.Errorf("sqlite: decode chore %s assignees: %w", chore.ID, err)
		}
		if rule.Valid {
			var recurrenceRecord persistence.RecurrenceRecord
			if err := json.Unmarshal([]byte(rule.String), &recurrenceRecord); err != nil {
				return nil, fmt.Errorf("sqlite: decode chore %s recurrence: %w", chore.ID, err)
			}
			chore.Recurrence = &recurrenceRecord
		}
		if chore.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse chore %s created_at: %w", chore.ID, err)
		}
		if chore.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse chore %s updated_at: %w", chore.ID, err)
		}
		chores = append(chores, chore)
	}
	return chores, rows.Err()
}

func (s *Store) loadAlarms(ctx context.Context) ([]persistence.AlarmRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, clock, label, enabled, repeat_days, created_at, updated_at FROM alarms ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load alarms: %w", err)
	}
	defer rows.Close()

	var alarms []persistence.AlarmRecord
	for rows.Next() {
		var alarm persistence.AlarmRecord
		var repeatDays string
		var createdAt, updatedAt string
		if err := rows.Scan(&alarm.ID, &alarm.Time, &alarm.Label, &alarm.Enabled, &repeatDays, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan alarm: %w", err)
		}
		if err := json.Unmarshal([]byte(repeatDays), &alarm.RepeatDays); err != nil {
			return nil, fmt.Errorf("sqlite: decode alarm %s repeat days: %w", alarm.ID, err)
		}
		if alarm.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse alarm %s created_at: %w", alarm.ID, err)
		}
		if alarm.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse alarm %s updated_at: %w", alarm.ID, err)
		}
		alarms = append(alarms, alarm)
	}
	return alarms, rows.Err()
}

func (s *Store) loadTimers(ctx context.Context) ([]persistence.TimerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, duration_seconds, remaining_seconds, running, finished, created_at
		 FROM timers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load timers: %w", err)
	}
	defer rows.Close()

	var timers []persistence.TimerRecord
	for rows.Next() {
		var timer persistence.TimerRecord
		var createdAt string
		if err := rows.Scan(&timer.ID, &timer.Label, &timer.DurationSeconds, &timer.RemainingSeconds,
			&timer.Running, &timer.Finished, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan timer: %w", err)
		}
		if timer.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse timer %s created_at: %w", timer.ID, err)
		}
		timers = append(timers, timer)
	}
	return timers, rows.Err()
}

func (s *Store) loadGroceries(ctx context.Context) ([]persistence.GroceryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, completed FROM groceries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load groceries: %w", err)
	}
	defer rows.Close()

	var items []persistence.GroceryRecord
	for rows.Next() {
		var item persistence.GroceryRecord
		if err := rows.Scan(&item.ID, &item.Name, &item.Completed); err != nil {
			return nil, fmt.Errorf("sqlite: scan grocery item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) loadRoutines(ctx context.Context) ([]persistence.RoutineRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, icon, steps, days FROM routines ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load routines: %w", err)
	}
	defer rows.Close()

	var routines []persistence.RoutineRecord
	for rows.Next() {
		var routine persistence.RoutineRecord
		var steps, days string
		if err := rows.Scan(&routine.ID, &routine.Name, &routine.Icon, &steps, &days); err != nil {
			return nil, fmt.Errorf("sqlite: scan routine: %w", err)
		}
		if err := json.Unmarshal([]byte(steps), &routine.Steps); err != nil {
			return nil, fmt.Errorf("sqlite: decode routine %s steps: %w", routine.ID, err)
		}
		if err := json.Unmarshal([]byte(days), &routine.Days); err != nil {
			return nil, fmt.Errorf("sqlite: decode routine %s days: %w", routine.ID, err)
		}
		routines = append(routines, routine)
	}
	return routines, rows.Err()
}

func (s *Store) loadLedgerKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM ledger_keys ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load ledger keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("sqlite: scan ledger key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
