package timecard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/timecard/internal/repository"
)

// Service orchestrates the timecard lifecycle: load, mutate under the
// state machine, validate, save.
type Service struct {
	timecards Repository
	logger    *slog.Logger
}

// NewService creates a new timecard service.
func NewService(timecards Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{timecards: timecards, logger: logger}
}

// CreateOrUpdateDraft creates a DRAFT timecard for the natural key or
// replaces the entry set of an existing one. The entry set is
// validated before anything is persisted.
func (s *Service) CreateOrUpdateDraft(ctx context.Context, employeeID string, weekStart Date, req DraftRequest) error {
	if err := validateDraftRequest(employeeID, weekStart, req); err != nil {
		return err
	}

	tc, err := s.timecards.FindByEmployeeAndWeek(ctx, employeeID, weekStart)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		tc = New(employeeID, weekStart)
	case err != nil:
		return fmt.Errorf("loading timecard: %w", err)
	}

	entries := make([]TimeEntry, 0, len(req.Entries))
	for _, in := range req.Entries {
		entries = append(entries, TimeEntry{
			Date:    in.Date,
			JobCode: in.JobCode,
			Minutes: in.Minutes,
		})
	}
	if err := tc.ReplaceEntries(entries); err != nil {
		return err
	}
	if err := tc.ValidateEntries(); err != nil {
		return err
	}

	if err := s.timecards.Save(ctx, tc); err != nil {
		return fmt.Errorf("saving timecard: %w", err)
	}

	s.logger.InfoContext(ctx, "draft saved",
		"employee_id", employeeID, "week_start", weekStart.String(), "version", tc.Version)
	return nil
}

// Submit moves the timecard for the natural key from DRAFT to
// SUBMITTED. Entries are not re-validated: they were validated on the
// last draft save and are immutable once submitted.
func (s *Service) Submit(ctx context.Context, employeeID string, weekStart Date) error {
	tc, err := s.load(ctx, employeeID, weekStart)
	if err != nil {
		return err
	}
	if err := tc.Submit(); err != nil {
		return err
	}
	if err := s.timecards.Save(ctx, tc); err != nil {
		return fmt.Errorf("saving timecard: %w", err)
	}

	s.logger.InfoContext(ctx, "timecard submitted",
		"employee_id", employeeID, "week_start", weekStart.String(), "version", tc.Version)
	return nil
}

// Approve moves the timecard for the natural key from SUBMITTED to
// APPROVED.
func (s *Service) Approve(ctx context.Context, employeeID string, weekStart Date) error {
	tc, err := s.load(ctx, employeeID, weekStart)
	if err != nil {
		return err
	}
	if err := tc.Approve(); err != nil {
		return err
	}
	if err := s.timecards.Save(ctx, tc); err != nil {
		return fmt.Errorf("saving timecard: %w", err)
	}

	s.logger.InfoContext(ctx, "timecard approved",
		"employee_id", employeeID, "week_start", weekStart.String(), "version", tc.Version)
	return nil
}

// List returns every persisted timecard with its entries.
func (s *Service) List(ctx context.Context) ([]*Timecard, error) {
	cards, err := s.timecards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timecards: %w", err)
	}
	return cards, nil
}

func (s *Service) load(ctx context.Context, employeeID string, weekStart Date) (*Timecard, error) {
	tc, err := s.timecards.FindByEmployeeAndWeek(ctx, employeeID, weekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w for employee %s, week %s", ErrNotFound, employeeID, weekStart)
		}
		return nil, fmt.Errorf("loading timecard: %w", err)
	}
	return tc, nil
}
