package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/timecard/internal/domain/timecard"
	"github.com/ganot/timecard/internal/repository"
)

const initialVersion = 1

// TimecardRepository implements timecard.Repository for SQLite
type TimecardRepository struct {
	db *DB
}

// NewTimecardRepository creates a new TimecardRepository
func NewTimecardRepository(db *DB) *TimecardRepository {
	return &TimecardRepository{db: db}
}

// FindByEmployeeAndWeek loads a timecard and its entries by natural key
func (r *TimecardRepository) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart timecard.Date) (*timecard.Timecard, error) {
	query := `
		SELECT id, employee_id, week_start, status, version
		FROM timecards
		WHERE employee_id = ? AND week_start = ?
	`

	var tc timecard.Timecard
	var weekStr string
	err := r.db.QueryRowContext(ctx, query, employeeID, weekStart.String()).Scan(
		&tc.ID,
		&tc.EmployeeID,
		&weekStr,
		&tc.Status,
		&tc.Version,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timecard: %w", err)
	}

	tc.WeekStart, err = timecard.ParseDate(weekStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse week_start: %w", err)
	}

	entries, err := r.loadEntries(ctx, tc.ID)
	if err != nil {
		return nil, err
	}
	tc.Entries = entries

	return &tc, nil
}

// Save persists the aggregate in one transaction: insert or
// version-checked update of the timecard row, then full replacement of
// the child entry rows to mirror the in-memory set. A stale version or
// a concurrent insert for the same natural key yields
// repository.ErrConflict and nothing is persisted.
func (r *TimecardRepository) Save(ctx context.Context, tc *timecard.Timecard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if tc.ID == 0 {
		if err := insertTimecard(ctx, tx, tc); err != nil {
			return err
		}
	} else {
		if err := updateTimecard(ctx, tx, tc); err != nil {
			return err
		}
	}

	if err := replaceEntries(ctx, tx, tc); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// List returns all timecards with their entries
func (r *TimecardRepository) List(ctx context.Context) ([]*timecard.Timecard, error) {
	query := `
		SELECT id, employee_id, week_start, status, version
		FROM timecards
		ORDER BY employee_id, week_start
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list timecards: %w", err)
	}
	defer rows.Close()

	var cards []*timecard.Timecard
	byID := make(map[int64]*timecard.Timecard)
	for rows.Next() {
		var tc timecard.Timecard
		var weekStr string
		if err := rows.Scan(&tc.ID, &tc.EmployeeID, &weekStr, &tc.Status, &tc.Version); err != nil {
			return nil, fmt.Errorf("failed to scan timecard: %w", err)
		}
		if tc.WeekStart, err = timecard.ParseDate(weekStr); err != nil {
			return nil, fmt.Errorf("failed to parse week_start: %w", err)
		}
		cards = append(cards, &tc)
		byID[tc.ID] = &tc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timecards: %w", err)
	}

	entryRows, err := r.db.QueryContext(ctx, `
		SELECT id, timecard_id, entry_date, job_code, minutes
		FROM time_entries
		ORDER BY timecard_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var e timecard.TimeEntry
		var parentID int64
		var dateStr string
		if err := entryRows.Scan(&e.ID, &parentID, &dateStr, &e.JobCode, &e.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if e.Date, err = timecard.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse entry_date: %w", err)
		}
		if parent, ok := byID[parentID]; ok {
			parent.Entries = append(parent.Entries, e)
		}
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return cards, nil
}

func insertTimecard(ctx context.Context, tx *sql.Tx, tc *timecard.Timecard) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO timecards (employee_id, week_start, status, version)
		VALUES (?, ?, ?, ?)
	`, tc.EmployeeID, tc.WeekStart.String(), tc.Status, initialVersion)

	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent first save for the same (employee, week)
			// won the race.
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to insert timecard: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	tc.ID = id
	tc.Version = initialVersion
	return nil
}

func updateTimecard(ctx context.Context, tx *sql.Tx, tc *timecard.Timecard) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE timecards
		SET status = ?, version = ?
		WHERE id = ? AND version = ?
	`, tc.Status, tc.Version+1, tc.ID, tc.Version)

	if err != nil {
		return fmt.Errorf("failed to update timecard: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM timecards WHERE id = ?)`, tc.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check timecard existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		// Row exists but version doesn't match - conflict
		return repository.ErrConflict
	}

	tc.Version++
	return nil
}

func replaceEntries(ctx context.Context, tx *sql.Tx, tc *timecard.Timecard) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries WHERE timecard_id = ?`, tc.ID); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	for i := range tc.Entries {
		e := &tc.Entries[i]
		res, err := tx.ExecContext(ctx, `
			INSERT INTO time_entries (timecard_id, entry_date, job_code, minutes)
			VALUES (?, ?, ?, ?)
		`, tc.ID, e.Date.String(), e.JobCode, e.Minutes)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get entry insert id: %w", err)
		}
		e.ID = id
	}
	return nil
}

func (r *TimecardRepository) loadEntries(ctx context.Context, timecardID int64) ([]timecard.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, entry_date, job_code, minutes
		FROM time_entries
		WHERE timecard_id = ?
		ORDER BY id
	`, timecardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer rows.Close()

	var entries []timecard.TimeEntry
	for rows.Next() {
		var e timecard.TimeEntry
		var dateStr string
		if err := rows.Scan(&e.ID, &dateStr, &e.JobCode, &e.Minutes); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if e.Date, err = timecard.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse entry_date: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
