package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nominahr/nomina-backend-go/internal/domain/employment"
	"github.com/nominahr/nomina-backend-go/internal/pkg/database"
)

type employmentRepository struct {
	db *database.DB
}

func NewEmploymentRepository(db *database.DB) employment.Repository {
	return &employmentRepository{db: db}
}

func (r *employmentRepository) ListEligible(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]employment.Employment, error) {
	q := GetQuerier(ctx, r.db)

	// Eligible: active, hired on or before the period end, and not terminated
	// before the period start.
	query := `
		SELECT id, organization_id, country_code, base_salary, salary_period,
			   is_active, hire_date, termination_date, created_at, updated_at
		FROM employments
		WHERE organization_id = $1
		  AND is_active = true
		  AND hire_date <= $3
		  AND (termination_date IS NULL OR termination_date >= $2)
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, organizationID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible employments: %w", err)
	}
	defer rows.Close()

	var employments []employment.Employment
	for rows.Next() {
		var e employment.Employment
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.CountryCode, &e.BaseSalary, &e.SalaryPeriod,
			&e.IsActive, &e.HireDate, &e.TerminationDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employment: %w", err)
		}
		employments = append(employments, e)
	}

	return employments, rows.Err()
}
