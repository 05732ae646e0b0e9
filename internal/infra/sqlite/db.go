// Package sqlite provides SQLite-based persistent storage for screenlog.
// It holds the raw library catalog and watch history only — derived
// achievement data is never written back, it is recomputed on demand.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/library.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "library.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS media (
			id                  TEXT PRIMARY KEY,
			title               TEXT NOT NULL,
			type                TEXT NOT NULL,
			runtime_minutes     INTEGER NOT NULL DEFAULT 0,
			seasons_count       INTEGER NOT NULL DEFAULT 0,
			episodes_per_season TEXT NOT NULL DEFAULT '[]',
			episode_runtimes    TEXT NOT NULL DEFAULT '[]',
			total_pages         INTEGER NOT NULL DEFAULT 0,
			pages_read          INTEGER NOT NULL DEFAULT 0,
			genres              TEXT NOT NULL DEFAULT '[]',
			platform            TEXT NOT NULL DEFAULT '',
			language            TEXT NOT NULL DEFAULT '',
			actors              TEXT NOT NULL DEFAULT '[]',
			rating              REAL NOT NULL DEFAULT 0,
			poster_url          TEXT NOT NULL DEFAULT '',
			added_at            INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS watch_history (
			id              TEXT PRIMARY KEY,
			media_id        TEXT NOT NULL,
			status          TEXT NOT NULL,
			season          INTEGER NOT NULL DEFAULT 0,
			episode         INTEGER NOT NULL DEFAULT 0,
			rating          REAL NOT NULL DEFAULT 0,
			audio_format    TEXT NOT NULL DEFAULT '',
			video_format    TEXT NOT NULL DEFAULT '',
			device          TEXT NOT NULL DEFAULT '',
			viewers         TEXT NOT NULL DEFAULT '[]',
			completed_at    INTEGER,
			watched_at      INTEGER,
			created_at      INTEGER,
			elapsed_seconds INTEGER NOT NULL DEFAULT 0,
			scheduled_at    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_media ON watch_history(media_id)`,
		`CREATE INDEX IF NOT EXISTS idx_history_status ON watch_history(status)`,
		`CREATE INDEX IF NOT EXISTS idx_history_completed ON watch_history(completed_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// ─── Column codecs ──────────────────────────────────────────────────────────

// jsonCol encodes a slice into its JSON text column form.
func jsonCol(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// fromJSONCol decodes a JSON text column into dst, tolerating empty.
func fromJSONCol(s string, dst interface{}) {
	if s == "" {
		return
	}
	_ = json.Unmarshal([]byte(s), dst)
}

// unixOrNull converts a time to its column form, NULL for zero times.
func unixOrNull(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}

// timeFromUnix converts a nullable unix column back, zero for NULL.
func timeFromUnix(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).UTC()
}
