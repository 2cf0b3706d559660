package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/nominahr/nomina-backend-go/internal/domain/audit"
	"github.com/nominahr/nomina-backend-go/internal/domain/employment"
	"github.com/nominahr/nomina-backend-go/internal/domain/organization"
	"github.com/nominahr/nomina-backend-go/internal/domain/payroll"
	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/nominahr/nomina-backend-go/internal/pkg/periodlock"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	tx             payroll.TxRunner
	locks          *periodlock.Locker
	periodRepo     organization.PeriodRepository
	employmentRepo employment.Repository
	runRepo        payroll.RunRepository
	auditRepo      audit.Repository
	registry       rules.Registry
}

func NewPayrollService(
	tx payroll.TxRunner,
	locks *periodlock.Locker,
	periodRepo organization.PeriodRepository,
	employmentRepo employment.Repository,
	runRepo payroll.RunRepository,
	auditRepo audit.Repository,
	registry rules.Registry,
) payroll.Service {
	return &ServiceImpl{
		tx:             tx,
		locks:          locks,
		periodRepo:     periodRepo,
		employmentRepo: employmentRepo,
		runRepo:        runRepo,
		auditRepo:      auditRepo,
		registry:       registry,
	}
}

// Helper to get organization_id from JWT context
func getOrganizationFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return organizationID, nil
}

// ========== PERIODS ==========

func (s *ServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	overlaps, err := s.periodRepo.HasOverlappingPeriod(ctx, organizationID, start, end)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if overlaps {
		return payroll.PeriodResponse{}, organization.ErrPeriodOverlaps
	}

	period, err := s.periodRepo.CreatePeriod(ctx, organization.PayrollPeriod{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		StartDate:      start,
		EndDate:        end,
		Status:         organization.PeriodStatusOpen,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return mapToPeriodResponse(period), nil
}

func (s *ServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListPeriods(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, mapToPeriodResponse(p))
	}
	return result, nil
}

// ========== RUN EXECUTION ==========

// Execute calculates a new versioned run for the period. The whole
// calculation runs under the period lock and inside one transaction: either
// the run header and every payslip line commit together, or nothing does.
// Recalculating an open (or even closed) period is always legal and yields a
// fresh run number; prior runs are never touched.
func (s *ServiceImpl) Execute(ctx context.Context, req payroll.ExecuteRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	if !s.locks.TryAcquire(req.PeriodID) {
		return payroll.RunResponse{}, payroll.ErrRunInProgress
	}
	defer s.locks.Release(req.PeriodID)

	var run payroll.PayrollRun
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		period, err := s.periodRepo.GetPeriodForUpdate(ctx, req.PeriodID, organizationID)
		if err != nil {
			return err
		}

		employments, err := s.employmentRepo.ListEligible(ctx, organizationID, period.StartDate, period.EndDate)
		if err != nil {
			return fmt.Errorf("failed to load eligible employments: %w", err)
		}

		// Resolve every rule set before the run row exists, so a missing
		// statutory table never leaves a run behind.
		year := period.StartDate.Year()
		ruleSets := make(map[string]rules.CountryPayrollRules)
		for _, emp := range employments {
			if _, ok := ruleSets[emp.CountryCode]; ok {
				continue
			}
			rs, err := s.registry.Resolve(ctx, emp.CountryCode, year)
			if err != nil {
				return err
			}
			ruleSets[emp.CountryCode] = rs
		}

		snapshot := make(map[string]string, len(ruleSets))
		for countryCode, rs := range ruleSets {
			snapshot[countryCode] = rs.ID
		}

		runNumber, err := s.runRepo.NextRunNumber(ctx, period.ID)
		if err != nil {
			return err
		}

		run, err = s.runRepo.CreateRun(ctx, payroll.PayrollRun{
			ID:            uuid.NewString(),
			PeriodID:      period.ID,
			RunNumber:     runNumber,
			Status:        payroll.RunStatusCalculating,
			ExecutedAt:    time.Now().UTC(),
			RulesSnapshot: snapshot,
		})
		if err != nil {
			return err
		}

		if err := s.auditRepo.Append(ctx, audit.Event{
			ID:         uuid.NewString(),
			RunID:      run.ID,
			Type:       audit.EventRunStarted,
			OccurredAt: time.Now().UTC(),
			Detail: map[string]interface{}{
				"run_number":     run.RunNumber,
				"employee_count": len(employments),
			},
		}); err != nil {
			return err
		}

		lines := make([]payroll.PayrollLine, 0, len(employments))
		totalGross := decimal.Zero
		totalNet := decimal.Zero
		for _, emp := range employments {
			line, err := CalculateLine(emp, ruleSets[emp.CountryCode])
			if err != nil {
				return err
			}
			line.ID = uuid.NewString()
			line.RunID = run.ID
			lines = append(lines, line)
			totalGross = totalGross.Add(line.GrossPay)
			totalNet = totalNet.Add(line.NetPay)
		}

		if err := s.runRepo.CreateLines(ctx, lines); err != nil {
			return err
		}
		if err := s.runRepo.CompleteRun(ctx, run.ID, len(lines), totalGross, totalNet); err != nil {
			return err
		}

		run.Status = payroll.RunStatusCompleted
		run.EmployeeCount = len(lines)
		run.TotalGross = totalGross
		run.TotalNet = totalNet

		return s.auditRepo.Append(ctx, audit.Event{
			ID:         uuid.NewString(),
			RunID:      run.ID,
			Type:       audit.EventRunCompleted,
			OccurredAt: time.Now().UTC(),
			Detail: map[string]interface{}{
				"run_number":     run.RunNumber,
				"employee_count": len(lines),
				"total_gross":    totalGross.String(),
				"total_net":      totalNet.String(),
			},
		})
	})
	if err != nil {
		// Calculation-time validation failures abort and roll back the whole
		// run; what survives is a lightweight error-state run plus its audit
		// trail. Configuration and concurrency errors leave nothing behind.
		if errors.Is(err, payroll.ErrInvalidCompensation) {
			s.recordErrorRun(ctx, req.PeriodID, organizationID, err)
		}
		return payroll.RunResponse{}, err
	}

	return payroll.NewRunResponse(run), nil
}

// recordErrorRun persists a run row in error state after the calculation
// transaction has rolled back. Best effort on top of an already-failed run:
// the caller still receives the original calculation error, but a failure to
// record is logged so a missing error run stays diagnosable.
func (s *ServiceImpl) recordErrorRun(ctx context.Context, periodID, organizationID string, cause error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		period, err := s.periodRepo.GetPeriodForUpdate(ctx, periodID, organizationID)
		if err != nil {
			return err
		}

		runNumber, err := s.runRepo.NextRunNumber(ctx, period.ID)
		if err != nil {
			return err
		}

		detail := cause.Error()
		run, err := s.runRepo.CreateRun(ctx, payroll.PayrollRun{
			ID:          uuid.NewString(),
			PeriodID:    period.ID,
			RunNumber:   runNumber,
			Status:      payroll.RunStatusError,
			ExecutedAt:  time.Now().UTC(),
			ErrorDetail: &detail,
		})
		if err != nil {
			return err
		}

		return s.auditRepo.Append(ctx, audit.Event{
			ID:         uuid.NewString(),
			RunID:      run.ID,
			Type:       audit.EventRunError,
			OccurredAt: time.Now().UTC(),
			Detail: map[string]interface{}{
				"run_number": run.RunNumber,
				"error":      detail,
			},
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to record error run",
			slog.String("period_id", periodID),
			slog.String("organization_id", organizationID),
			slog.String("cause", cause.Error()),
			slog.String("error", err.Error()),
		)
	}
}

// ========== FINALIZATION ==========

// Finalize designates one completed run as the authoritative result for its
// period. Exclusive with Execute through the same period lock, so a run can
// never be finalized while a newer recalculation is in flight.
func (s *ServiceImpl) Finalize(ctx context.Context, runID string) (payroll.RunResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	target, err := s.runRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	if !s.locks.TryAcquire(target.PeriodID) {
		return payroll.RunResponse{}, payroll.ErrRunInProgress
	}
	defer s.locks.Release(target.PeriodID)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.periodRepo.GetPeriodForUpdate(ctx, target.PeriodID, organizationID); err != nil {
			return err
		}

		// Re-read under the lock; the pre-lock copy may be stale.
		run, err := s.runRepo.GetRunByID(ctx, runID, organizationID)
		if err != nil {
			return err
		}

		hasFinal, err := s.runRepo.HasFinalRun(ctx, run.PeriodID)
		if err != nil {
			return err
		}
		if hasFinal {
			return payroll.ErrRunAlreadyFinal
		}
		if run.Status != payroll.RunStatusCompleted {
			return payroll.ErrInvalidRunState
		}

		if err := s.runRepo.MarkRunFinal(ctx, run.ID); err != nil {
			return err
		}

		supersededIDs, err := s.runRepo.SupersedeCompletedRuns(ctx, run.PeriodID, run.ID)
		if err != nil {
			return err
		}
		for _, supersededID := range supersededIDs {
			if err := s.auditRepo.Append(ctx, audit.Event{
				ID:         uuid.NewString(),
				RunID:      supersededID,
				Type:       audit.EventRunSuperseded,
				OccurredAt: time.Now().UTC(),
				Detail: map[string]interface{}{
					"superseded_by": run.ID,
				},
			}); err != nil {
				return err
			}
		}

		if err := s.periodRepo.UpdatePeriodStatus(ctx, run.PeriodID, organization.PeriodStatusClosed); err != nil {
			return err
		}

		return s.auditRepo.Append(ctx, audit.Event{
			ID:         uuid.NewString(),
			RunID:      run.ID,
			Type:       audit.EventRunFinalized,
			OccurredAt: time.Now().UTC(),
			Detail: map[string]interface{}{
				"run_number": run.RunNumber,
			},
		})
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	finalized, err := s.runRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.NewRunResponse(finalized), nil
}

// ========== READ MODELS ==========

func (s *ServiceImpl) GetRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.NewRunResponse(run), nil
}

func (s *ServiceImpl) ListRunsByPeriod(ctx context.Context, periodID string) ([]payroll.RunResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.periodRepo.GetPeriodByID(ctx, periodID, organizationID); err != nil {
		return nil, err
	}

	runs, err := s.runRepo.ListRunsByPeriod(ctx, periodID, organizationID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		result = append(result, payroll.NewRunResponse(r))
	}
	return result, nil
}

func (s *ServiceImpl) CurrentRun(ctx context.Context, periodID string) (payroll.RunResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.runRepo.CurrentRun(ctx, periodID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.NewRunResponse(run), nil
}

func (s *ServiceImpl) ListPayslips(ctx context.Context, runID string) ([]payroll.PayslipResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.runRepo.GetRunByID(ctx, runID, organizationID); err != nil {
		return nil, err
	}

	lines, err := s.runRepo.ListLinesByRun(ctx, runID, organizationID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayslipResponse, 0, len(lines))
	for _, l := range lines {
		result = append(result, payroll.NewPayslipResponse(l))
	}
	return result, nil
}

func (s *ServiceImpl) ListRunEvents(ctx context.Context, runID string) ([]audit.EventResponse, error) {
	organizationID, err := getOrganizationFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.runRepo.GetRunByID(ctx, runID, organizationID); err != nil {
		return nil, err
	}

	events, err := s.auditRepo.ListForRun(ctx, runID, organizationID)
	if err != nil {
		return nil, err
	}

	result := make([]audit.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, audit.EventResponse{
			ID:         e.ID,
			RunID:      e.RunID,
			Type:       string(e.Type),
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
			Detail:     e.Detail,
		})
	}
	return result, nil
}

// ========== HELPERS ==========

func mapToPeriodResponse(p organization.PayrollPeriod) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		StartDate:      p.StartDate.Format("2006-01-02"),
		EndDate:        p.EndDate.Format("2006-01-02"),
		Status:         string(p.Status),
	}
}
