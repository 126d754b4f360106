package timecard

import (
	"fmt"
	"strings"
)

// Per-day minutes bound, inclusive: 8 to 12 hours.
const (
	minDailyMinutes = 480
	maxDailyMinutes = 720
)

// ValidateEntries checks the per-day minutes rule across the current
// entry set: for every date that appears, the summed minutes must fall
// within [480, 720]. Days absent from the set are not checked.
func (t *Timecard) ValidateEntries() error {
	totals := make(map[Date]int, len(t.Entries))
	var order []Date
	for _, e := range t.Entries {
		if _, ok := totals[e.Date]; !ok {
			order = append(order, e.Date)
		}
		totals[e.Date] += e.Minutes
	}

	var messages []string
	for _, d := range order {
		total := totals[d]
		if total < minDailyMinutes {
			messages = append(messages, fmt.Sprintf("Total minutes for %s less than 8 hours: %d", d, total))
		}
		if total > maxDailyMinutes {
			messages = append(messages, fmt.Sprintf("Total minutes for %s exceeds 12 hours: %d", d, total))
		}
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// EntryInput is one requested time entry.
type EntryInput struct {
	Date    Date   `json:"date"`
	JobCode string `json:"jobCode"`
	Minutes int    `json:"minutes"`
}

// DraftRequest carries the full replacement entry set for a draft save.
type DraftRequest struct {
	Entries []EntryInput `json:"entries"`
}

func validateDraftRequest(employeeID string, weekStart Date, req DraftRequest) error {
	var messages []string
	if strings.TrimSpace(employeeID) == "" {
		messages = append(messages, "employeeId is required")
	}
	if weekStart.IsZero() {
		messages = append(messages, "weekStart is required")
	}
	if len(req.Entries) == 0 {
		messages = append(messages, "entries must not be empty")
	}
	for i, e := range req.Entries {
		if e.Date.IsZero() {
			messages = append(messages, fmt.Sprintf("entries[%d]: date is required", i))
		}
		if strings.TrimSpace(e.JobCode) == "" {
			messages = append(messages, fmt.Sprintf("entries[%d]: jobCode is required", i))
		}
		if e.Minutes <= 0 {
			messages = append(messages, fmt.Sprintf("entries[%d]: minutes must be positive", i))
		}
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
