package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY under concurrent requests and keeps :memory:
	// databases on one connection.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it doesn't exist yet.
func (db *DB) RunMigrations() error {
	migration := `
-- Timecards table: one row per (employee, week)
CREATE TABLE IF NOT EXISTS timecards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    employee_id TEXT NOT NULL,
    week_start TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('DRAFT', 'SUBMITTED', 'APPROVED')),
    version INTEGER NOT NULL,
    UNIQUE(employee_id, week_start)
);

-- Time entries, owned by their timecard; rows vanish with the parent
CREATE TABLE IF NOT EXISTS time_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timecard_id INTEGER NOT NULL,
    entry_date TEXT NOT NULL,
    job_code TEXT NOT NULL,
    minutes INTEGER NOT NULL,
    FOREIGN KEY (timecard_id) REFERENCES timecards(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_timecard_entries ON time_entries(timecard_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
