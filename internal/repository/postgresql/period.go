package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nominahr/nomina-backend-go/internal/domain/organization"
	"github.com/nominahr/nomina-backend-go/internal/pkg/database"
)

// exclusion_violation, raised by the no-overlap constraint on payroll_periods
const pgExclusionViolation = "23P01"

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) organization.PeriodRepository {
	return &periodRepository{db: db}
}

const periodColumns = `id, organization_id, start_date, end_date, status, created_at, updated_at`

func scanPeriod(row pgx.Row) (organization.PayrollPeriod, error) {
	var p organization.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *periodRepository) CreatePeriod(ctx context.Context, period organization.PayrollPeriod) (organization.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, organization_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query,
		period.ID, period.OrganizationID, period.StartDate, period.EndDate, period.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return organization.PayrollPeriod{}, organization.ErrPeriodOverlaps
		}
		return organization.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return created, nil
}

func (r *periodRepository) GetPeriodByID(ctx context.Context, id string, organizationID string) (organization.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE id = $1 AND organization_id = $2
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.PayrollPeriod{}, organization.ErrPeriodNotFound
		}
		return organization.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) GetPeriodForUpdate(ctx context.Context, id string, organizationID string) (organization.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE id = $1 AND organization_id = $2
		FOR UPDATE
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return organization.PayrollPeriod{}, organization.ErrPeriodNotFound
		}
		return organization.PayrollPeriod{}, fmt.Errorf("failed to lock payroll period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) ListPeriods(ctx context.Context, organizationID string) ([]organization.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE organization_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []organization.PayrollPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *periodRepository) HasOverlappingPeriod(ctx context.Context, organizationID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_periods
			WHERE organization_id = $1 AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, organizationID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check period overlap: %w", err)
	}

	return exists, nil
}

func (r *periodRepository) UpdatePeriodStatus(ctx context.Context, id string, status organization.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrPeriodNotFound
	}

	return nil
}
