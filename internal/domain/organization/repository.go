package organization

import (
	"context"
	"time"
)

// PeriodRepository defines data access for payroll periods. All methods take
// organizationID to prevent cross-organization data access.
type PeriodRepository interface {
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string, organizationID string) (PayrollPeriod, error)

	// GetPeriodForUpdate loads the period row with a row-level write lock.
	// Callers must be inside a transaction; the lock makes period calculation
	// single-writer across service instances.
	GetPeriodForUpdate(ctx context.Context, id string, organizationID string) (PayrollPeriod, error)

	ListPeriods(ctx context.Context, organizationID string) ([]PayrollPeriod, error)
	HasOverlappingPeriod(ctx context.Context, organizationID string, start, end time.Time) (bool, error)
	UpdatePeriodStatus(ctx context.Context, id string, status PeriodStatus) error
}
