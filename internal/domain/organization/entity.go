package organization

import "time"

type Organization struct {
	ID           string
	Name         string
	BaseCurrency string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusClosed PeriodStatus = "closed"
)

// PayrollPeriod - One payable cycle for an organization. A period may
// accumulate any number of runs; it is closed only when one of them is
// finalized.
type PayrollPeriod struct {
	ID             string
	OrganizationID string
	StartDate      time.Time
	EndDate        time.Time
	Status         PeriodStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
