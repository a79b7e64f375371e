package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/borgmon/deskclock/pkg/models"
	_ "github.com/mattn/go-sqlite3"
)

const createHistoryTableSQL = `
CREATE TABLE IF NOT EXISTS alarm_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	alarm_id TEXT NOT NULL,
	time_of_day TEXT NOT NULL,
	action TEXT NOT NULL,
	at DATETIME NOT NULL,
	snooze_minutes INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_alarm_history_at ON alarm_history (at);
`

// HistoryStore journals alarm lifecycle steps in SQLite
type HistoryStore struct {
	db     *sql.DB
	dbPath string
}

// NewHistoryStore creates a store for the database at dbPath. Call Init before use.
func NewHistoryStore(dbPath string) *HistoryStore {
	return &HistoryStore{dbPath: dbPath}
}

// Init opens the database and creates the schema
func (s *HistoryStore) Init(ctx context.Context) error {
	dir := filepath.Dir(s.dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", s.dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	s.db = db

	// One writer is plenty for a 1 Hz journal
	s.db.SetMaxOpenConns(1)
	s.db.SetMaxIdleConns(1)
	s.db.SetConnMaxLifetime(5 * time.Minute)

	if err := s.db.PingContext(ctx); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to ping history database: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, createHistoryTableSQL); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to create history table: %w", err)
	}

	log.Printf("History database ready at %s", s.dbPath)
	return nil
}

// Record appends entry to the journal
func (s *HistoryStore) Record(ctx context.Context, entry models.HistoryEntry) error {
	query := `INSERT INTO alarm_history (alarm_id, time_of_day, action, at, snooze_minutes)
	          VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, entry.AlarmID, entry.TimeOfDay, string(entry.Action), entry.At, entry.SnoozeMinutes); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, alarm_id, time_of_day, action, at, snooze_minutes
	          FROM alarm_history
	          ORDER BY at DESC, id DESC
	          LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		var action string
		if err := rows.Scan(&e.ID, &e.AlarmID, &e.TimeOfDay, &action, &e.At, &e.SnoozeMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Action = models.HistoryAction(action)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return entries, nil
}

// Close closes the database
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
