package payroll

import (
	"context"

	"github.com/nominahr/nomina-backend-go/internal/domain/audit"
)

// Service is the payroll run engine and its read surface. Execute and
// Finalize never interleave for the same period; both hold the period lock
// for their full duration.
type Service interface {
	// Periods
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)

	// Runs
	Execute(ctx context.Context, req ExecuteRunRequest) (RunResponse, error)
	Finalize(ctx context.Context, runID string) (RunResponse, error)
	GetRun(ctx context.Context, runID string) (RunResponse, error)
	ListRunsByPeriod(ctx context.Context, periodID string) ([]RunResponse, error)
	CurrentRun(ctx context.Context, periodID string) (RunResponse, error)

	// Read models
	ListPayslips(ctx context.Context, runID string) ([]PayslipResponse, error)
	ListRunEvents(ctx context.Context, runID string) ([]audit.EventResponse, error)
}
