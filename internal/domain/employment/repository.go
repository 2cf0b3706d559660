package employment

import (
	"context"
	"time"
)

type Repository interface {
	// ListEligible returns active employments whose tenure overlaps the
	// [periodStart, periodEnd] window: hired on or before the period end and
	// not terminated before the period start.
	ListEligible(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]Employment, error)
}
