package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
	now func() time.Time
}

// New creates a new database connection
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Every connection to :memory: is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{DB: db, now: time.Now}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS latency_samples (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        batch_id TEXT NOT NULL,
        timestamp INTEGER NOT NULL, -- epoch milliseconds
        from_id TEXT NOT NULL,
        to_id TEXT NOT NULL,
        latency_ms INTEGER NOT NULL CHECK (latency_ms >= 1)
    );

    CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON latency_samples(timestamp);
    CREATE INDEX IF NOT EXISTS idx_samples_pair ON latency_samples(from_id, to_id, timestamp);
    CREATE INDEX IF NOT EXISTS idx_samples_batch ON latency_samples(batch_id);

    CREATE TABLE IF NOT EXISTS hourly_pair_stats (
        hour INTEGER NOT NULL, -- epoch milliseconds, truncated to the hour
        from_id TEXT NOT NULL,
        to_id TEXT NOT NULL,
        samples INTEGER,
        avg_ms REAL,
        min_ms INTEGER,
        max_ms INTEGER,
        PRIMARY KEY (hour, from_id, to_id)
    );
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}

// MaxLookbackHours bounds query windows to the longest retained aggregate
const MaxLookbackHours = hourlyRetentionDays * 24

// sinceHours is since for a window in hours, clamped to [0, MaxLookbackHours]
func (db *DB) sinceHours(hours int) int64 {
	hours = min(max(hours, 0), MaxLookbackHours)
	return db.since(time.Duration(hours) * time.Hour)
}

// since returns the epoch millisecond cutoff d before now
func (db *DB) since(d time.Duration) int64 {
	return db.now().Add(-d).UnixMilli()
}
