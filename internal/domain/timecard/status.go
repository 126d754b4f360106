package timecard

import "fmt"

// Status represents the lifecycle state of a timecard.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
)

type event string

const (
	eventEdit    event = "edit"
	eventSubmit  event = "submit"
	eventApprove event = "approve"
)

// transitions is the only place lifecycle moves are declared. The
// status only ever moves forward; APPROVED is terminal.
var transitions = map[Status]map[event]Status{
	StatusDraft: {
		eventEdit:   StatusDraft,
		eventSubmit: StatusSubmitted,
	},
	StatusSubmitted: {
		eventApprove: StatusApproved,
	},
}

var eventRules = map[event]string{
	eventEdit:    "create or update allowed only in DRAFT status",
	eventSubmit:  "submission allowed only in DRAFT status",
	eventApprove: "approval allowed only in SUBMITTED status",
}

func transition(from Status, ev event) (Status, error) {
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: %s, current status is %s", ErrInvalidState, eventRules[ev], from)
}
