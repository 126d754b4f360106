package timecard

import "context"

// Repository is the persistence port the service depends on. Save
// inserts new aggregates and updates existing ones, replacing the
// child entry rows to mirror the in-memory set and failing with
// repository.ErrConflict when the stored version no longer matches.
type Repository interface {
	FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart Date) (*Timecard, error)
	Save(ctx context.Context, tc *Timecard) error
	List(ctx context.Context) ([]*Timecard, error)
}
