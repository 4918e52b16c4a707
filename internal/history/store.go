// Package history persists one row per tool invocation in SQLite.
//
// The database is a diagnostic aid, not an archive: rows record which driver
// ran with which argument vector, under which run ID, and how it exited.
// Schema changes bump schemaVersion; users clear the database to adopt a new
// schema.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

var schema = []string{
	`CREATE TABLE IF NOT EXISTS invocations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    driver TEXT NOT NULL,
    command TEXT NOT NULL,
    exit_code INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_invocations_run_id ON invocations(run_id)`,
}

// Record describes one completed tool invocation.
type Record struct {
	ID         int64
	RunID      string
	Driver     string
	Command    string
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store manages invocation history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Append inserts a completed invocation and returns its row ID.
func (s *Store) Append(ctx context.Context, rec Record) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO invocations (run_id, driver, command, exit_code, started_at, finished_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Driver,
		rec.Command,
		rec.ExitCode,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert invocation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}
	return id, nil
}

// Recent returns the newest invocations, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, driver, command, exit_code, started_at, finished_at
         FROM invocations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var started, finished string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Driver, &rec.Command, &rec.ExitCode, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) applySchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}
