package audit

import "time"

type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventRunCompleted  EventType = "run_completed"
	EventRunError      EventType = "run_error"
	EventRunFinalized  EventType = "run_finalized"
	EventRunSuperseded EventType = "run_superseded"
)

// Event - Append-only lifecycle record for a payroll run. Never updated or
// deleted.
type Event struct {
	ID         string
	RunID      string
	Type       EventType
	OccurredAt time.Time
	Detail     map[string]interface{}
}
