// Package journal persists companion lifecycle events to a SQLite database
// so launches, restarts, and failures stay inspectable across host sessions.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Journal wraps the SQLite connection holding the launch history.
type Journal struct {
	conn *sql.DB
	path string
}

// Open opens or creates the journal database at the specified path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// WAL keeps the host-facing write path from blocking readers
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	j := &Journal{conn: conn, path: path}
	if err := j.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return j, nil
}

// Close checkpoints and closes the database connection.
func (j *Journal) Close() error {
	if j.conn == nil {
		return nil
	}
	j.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return j.conn.Close()
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS launch_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		details TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_launch_events_timestamp ON launch_events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_launch_events_type ON launch_events(event_type);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// Event is one recorded lifecycle event.
type Event struct {
	ID        int64
	EventType string
	Details   string
	Timestamp time.Time
}

// Record appends a lifecycle event.
func (j *Journal) Record(eventType, details string) error {
	_, err := j.conn.Exec(
		`INSERT INTO launch_events (event_type, details, timestamp) VALUES (?, ?, ?)`,
		eventType, details, time.Now(),
	)
	return err
}

// Recent returns the newest events, newest first, up to limit.
func (j *Journal) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.conn.Query(
		`SELECT id, event_type, COALESCE(details, ''), timestamp
		 FROM launch_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query launch events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EventType, &e.Details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan launch event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
