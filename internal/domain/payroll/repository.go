package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// RunRepository defines data access for runs and their payslip lines.
// Run reads take organizationID and scope through the owning period to
// prevent cross-organization access.
type RunRepository interface {
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRunByID(ctx context.Context, id string, organizationID string) (PayrollRun, error)
	ListRunsByPeriod(ctx context.Context, periodID string, organizationID string) ([]PayrollRun, error)

	// NextRunNumber returns max(run_number)+1 for the period, starting at 1.
	// Must be called under the period row lock.
	NextRunNumber(ctx context.Context, periodID string) (int, error)

	// CompleteRun transitions a calculating run to completed and stores its
	// derived totals.
	CompleteRun(ctx context.Context, runID string, employeeCount int, totalGross, totalNet decimal.Decimal) error

	MarkRunFinal(ctx context.Context, runID string) error

	// SupersedeCompletedRuns moves every completed run of the period except
	// exceptRunID to superseded and returns the affected run IDs. Error runs
	// are untouched.
	SupersedeCompletedRuns(ctx context.Context, periodID string, exceptRunID string) ([]string, error)

	HasFinalRun(ctx context.Context, periodID string) (bool, error)

	// CurrentRun returns the authoritative run for a period: the final run if
	// one exists, otherwise the highest-numbered completed run.
	CurrentRun(ctx context.Context, periodID string, organizationID string) (PayrollRun, error)

	CreateLines(ctx context.Context, lines []PayrollLine) error
	ListLinesByRun(ctx context.Context, runID string, organizationID string) ([]PayrollLine, error)
}

// TxRunner executes fn inside a database transaction. The transactional
// querier travels in the context, so repositories called from fn join the
// same transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
