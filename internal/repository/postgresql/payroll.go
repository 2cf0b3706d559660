package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nominahr/nomina-backend-go/internal/domain/payroll"
	"github.com/nominahr/nomina-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type runRepository struct {
	db *database.DB
}

func NewRunRepository(db *database.DB) payroll.RunRepository {
	return &runRepository{db: db}
}

// ========== RUNS ==========

func (r *runRepository) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	snapshot, err := json.Marshal(run.RulesSnapshot)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to encode rules snapshot: %w", err)
	}

	query := `
		INSERT INTO payroll_runs (
			id, period_id, run_number, status, is_final, executed_at,
			error_detail, rules_snapshot, employee_count, total_gross, total_net
		) VALUES ($1, $2, $3, $4, false, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		run.ID, run.PeriodID, run.RunNumber, run.Status, run.ExecutedAt,
		run.ErrorDetail, snapshot, run.EmployeeCount, run.TotalGross, run.TotalNet,
	).Scan(&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return run, nil
}

const runColumns = `
	r.id, r.period_id, r.run_number, r.status, r.is_final, r.executed_at,
	r.error_detail, r.rules_snapshot, r.employee_count, r.total_gross, r.total_net,
	r.created_at, r.updated_at`

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	var snapshot []byte
	err := row.Scan(
		&run.ID, &run.PeriodID, &run.RunNumber, &run.Status, &run.IsFinal, &run.ExecutedAt,
		&run.ErrorDetail, &snapshot, &run.EmployeeCount, &run.TotalGross, &run.TotalNet,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &run.RulesSnapshot); err != nil {
			return payroll.PayrollRun{}, fmt.Errorf("failed to decode rules snapshot: %w", err)
		}
	}
	return run, nil
}

func (r *runRepository) GetRunByID(ctx context.Context, id string, organizationID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs r
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE r.id = $1 AND p.organization_id = $2
	`

	run, err := scanRun(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *runRepository) ListRunsByPeriod(ctx context.Context, periodID string, organizationID string) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs r
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE r.period_id = $1 AND p.organization_id = $2
		ORDER BY r.run_number DESC
	`

	rows, err := q.Query(ctx, query, periodID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *runRepository) NextRunNumber(ctx context.Context, periodID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var next int
	err := q.QueryRow(ctx,
		`SELECT COALESCE(MAX(run_number), 0) + 1 FROM payroll_runs WHERE period_id = $1`,
		periodID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next run number: %w", err)
	}

	return next, nil
}

func (r *runRepository) CompleteRun(ctx context.Context, runID string, employeeCount int, totalGross, totalNet decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $2, employee_count = $3, total_gross = $4, total_net = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`

	tag, err := q.Exec(ctx, query, runID, payroll.RunStatusCompleted, employeeCount, totalGross, totalNet, payroll.RunStatusCalculating)
	if err != nil {
		return fmt.Errorf("failed to complete payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrInvalidRunState
	}

	return nil
}

func (r *runRepository) MarkRunFinal(ctx context.Context, runID string) error {
	q := GetQuerier(ctx, r.db)

	// Only a completed, not-yet-final run may become final. The partial
	// unique index on (period_id) WHERE is_final backs this up at the
	// schema level.
	query := `
		UPDATE payroll_runs
		SET is_final = true, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND is_final = false
	`

	tag, err := q.Exec(ctx, query, runID, payroll.RunStatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to mark payroll run final: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrInvalidRunState
	}

	return nil
}

func (r *runRepository) SupersedeCompletedRuns(ctx context.Context, periodID string, exceptRunID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET status = $3, updated_at = NOW()
		WHERE period_id = $1 AND id <> $2 AND status = $4 AND is_final = false
		RETURNING id
	`

	rows, err := q.Query(ctx, query, periodID, exceptRunID, payroll.RunStatusSuperseded, payroll.RunStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to supersede payroll runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan superseded run id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *runRepository) HasFinalRun(ctx context.Context, periodID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payroll_runs WHERE period_id = $1 AND is_final = true)`,
		periodID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for final run: %w", err)
	}

	return exists, nil
}

func (r *runRepository) CurrentRun(ctx context.Context, periodID string, organizationID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	// "Current" is derived, never stored: the final run wins, otherwise the
	// highest-numbered completed run.
	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs r
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE r.period_id = $1 AND p.organization_id = $2
		  AND (r.status = $3 OR r.is_final = true)
		ORDER BY r.is_final DESC, r.run_number DESC
		LIMIT 1
	`

	run, err := scanRun(q.QueryRow(ctx, query, periodID, organizationID, payroll.RunStatusCompleted))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrNoCompletedRun
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get current payroll run: %w", err)
	}

	return run, nil
}

// ========== LINES ==========

func (r *runRepository) CreateLines(ctx context.Context, lines []payroll.PayrollLine) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_lines (
			id, run_id, employment_id, base_salary, transport_allowance_applied,
			health_employee_deduction, pension_employee_deduction,
			health_employer_contribution, pension_employer_contribution,
			gross_pay, total_employee_deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, line := range lines {
		_, err := q.Exec(ctx, query,
			line.ID, line.RunID, line.EmploymentID, line.BaseSalary, line.TransportAllowanceApplied,
			line.HealthEmployeeDeduction, line.PensionEmployeeDeduction,
			line.HealthEmployerContribution, line.PensionEmployerContribution,
			line.GrossPay, line.TotalEmployeeDeductions, line.NetPay,
		)
		if err != nil {
			return fmt.Errorf("failed to create payroll line for employment %s: %w", line.EmploymentID, err)
		}
	}

	return nil
}

func (r *runRepository) ListLinesByRun(ctx context.Context, runID string, organizationID string) ([]payroll.PayrollLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.run_id, l.employment_id, l.base_salary, l.transport_allowance_applied,
			   l.health_employee_deduction, l.pension_employee_deduction,
			   l.health_employer_contribution, l.pension_employer_contribution,
			   l.gross_pay, l.total_employee_deductions, l.net_pay, l.created_at
		FROM payroll_lines l
		JOIN payroll_runs r ON r.id = l.run_id
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE l.run_id = $1 AND p.organization_id = $2
		ORDER BY l.employment_id
	`

	rows, err := q.Query(ctx, query, runID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.PayrollLine
	for rows.Next() {
		var l payroll.PayrollLine
		if err := rows.Scan(
			&l.ID, &l.RunID, &l.EmploymentID, &l.BaseSalary, &l.TransportAllowanceApplied,
			&l.HealthEmployeeDeduction, &l.PensionEmployeeDeduction,
			&l.HealthEmployerContribution, &l.PensionEmployerContribution,
			&l.GrossPay, &l.TotalEmployeeDeductions, &l.NetPay, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}
