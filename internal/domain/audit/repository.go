package audit

import "context"

// Repository is the append-only audit store. Append shares the caller's
// transaction: if the audit write fails, the payroll change it documents must
// fail with it.
type Repository interface {
	Append(ctx context.Context, event Event) error

	// ListForRun returns the events of one run ordered by occurred_at.
	ListForRun(ctx context.Context, runID string, organizationID string) ([]Event, error)
}
