package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultPath = "data/arbfinder.db"

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures the opportunities and alerts tables exist.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range []string{opportunitiesSchemaSQL, alertsSchemaSQL} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropTables removes all tables.
func (s *Store) DropTables(ctx context.Context) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS alerts_sent;`,
		`DROP TABLE IF EXISTS opportunities;`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ClearTables truncates all tables.
func (s *Store) ClearTables(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM alerts_sent;`,
		`DELETE FROM opportunities;`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

const opportunitiesSchemaSQL = `
CREATE TABLE IF NOT EXISTS opportunities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint TEXT NOT NULL,
	sport TEXT NOT NULL,
	event_id TEXT,
	event_name TEXT NOT NULL,
	market TEXT NOT NULL,
	start_time TEXT,
	margin_pct REAL NOT NULL,
	total_stake_cents INTEGER NOT NULL,
	profit_cents INTEGER NOT NULL,
	draw_loss_cents INTEGER NOT NULL DEFAULT 0,
	confidence REAL NOT NULL,
	confidence_label TEXT NOT NULL,
	score REAL NOT NULL,
	legs_json TEXT NOT NULL,
	found_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_opportunities_sport ON opportunities(sport);
CREATE INDEX IF NOT EXISTS idx_opportunities_found_at ON opportunities(found_at);
`

const alertsSchemaSQL = `
CREATE TABLE IF NOT EXISTS alerts_sent (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint TEXT NOT NULL,
	channel TEXT NOT NULL,
	sent_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_alerts_fingerprint ON alerts_sent(fingerprint);
`
