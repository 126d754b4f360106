package timecard

// TimeEntry is one (date, jobCode, minutes) tuple within a timecard.
// Within a single timecard an entry's identity is its (date, jobCode)
// pair; the numeric ID is a storage surrogate assigned on persist.
type TimeEntry struct {
	ID      int64  `json:"id"`
	Date    Date   `json:"date"`
	JobCode string `json:"jobCode"`
	Minutes int    `json:"minutes"`
}

// Timecard is one employee's record of work for one week. It is the
// aggregate root: entries are owned exclusively by their timecard and
// are persisted and validated together with it.
type Timecard struct {
	ID         int64       `json:"id"`
	EmployeeID string      `json:"employeeId"`
	WeekStart  Date        `json:"weekStart"`
	Status     Status      `json:"status"`
	Version    int64       `json:"version"`
	Entries    []TimeEntry `json:"entries"`
}

// New creates a timecard in DRAFT for the given natural key.
func New(employeeID string, weekStart Date) *Timecard {
	return &Timecard{
		EmployeeID: employeeID,
		WeekStart:  weekStart,
		Status:     StatusDraft,
	}
}

type entryKey struct {
	date    Date
	jobCode string
}

// ReplaceEntries discards the current entry set and installs a new one.
// Duplicate (date, jobCode) pairs collapse into a single member, the
// last occurrence winning. Editing is only legal while in DRAFT.
func (t *Timecard) ReplaceEntries(entries []TimeEntry) error {
	if _, err := transition(t.Status, eventEdit); err != nil {
		return err
	}

	seen := make(map[entryKey]int, len(entries))
	replaced := make([]TimeEntry, 0, len(entries))
	for _, e := range entries {
		key := entryKey{date: e.Date, jobCode: e.JobCode}
		if i, ok := seen[key]; ok {
			replaced[i] = e
			continue
		}
		seen[key] = len(replaced)
		replaced = append(replaced, e)
	}
	t.Entries = replaced
	return nil
}

// Submit moves a DRAFT timecard to SUBMITTED.
func (t *Timecard) Submit() error {
	to, err := transition(t.Status, eventSubmit)
	if err != nil {
		return err
	}
	t.Status = to
	return nil
}

// Approve moves a SUBMITTED timecard to APPROVED.
func (t *Timecard) Approve() error {
	to, err := transition(t.Status, eventApprove)
	if err != nil {
		return err
	}
	t.Status = to
	return nil
}
