package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/nominahr/nomina-backend-go/internal/pkg/database"
)

type rulesRepository struct {
	db *database.DB
}

func NewRulesRepository(db *database.DB) rules.Repository {
	return &rulesRepository{db: db}
}

func (r *rulesRepository) GetActive(ctx context.Context, countryCode string, year int) (rules.CountryPayrollRules, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, country_code, year, minimum_wage,
			   health_employee_pct, pension_employee_pct,
			   health_employer_pct, pension_employer_pct,
			   transport_allowance, transport_allowance_salary_cap,
			   is_active, created_at, updated_at
		FROM country_payroll_rules
		WHERE country_code = $1 AND year = $2 AND is_active = true
	`

	var rs rules.CountryPayrollRules
	err := q.QueryRow(ctx, query, countryCode, year).Scan(
		&rs.ID, &rs.CountryCode, &rs.Year, &rs.MinimumWage,
		&rs.HealthEmployeePct, &rs.PensionEmployeePct,
		&rs.HealthEmployerPct, &rs.PensionEmployerPct,
		&rs.TransportAllowance, &rs.TransportAllowanceSalaryCap,
		&rs.IsActive, &rs.CreatedAt, &rs.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rules.CountryPayrollRules{}, rules.ErrRulesNotFound
		}
		return rules.CountryPayrollRules{}, fmt.Errorf("failed to get payroll rules: %w", err)
	}

	return rs, nil
}

// Create deactivates any active row for the same key and inserts the
// replacement in a single transaction, so a failed insert can never leave the
// key with no active row. Joins the caller's transaction when one is open.
func (r *rulesRepository) Create(ctx context.Context, rs rules.CountryPayrollRules) (rules.CountryPayrollRules, error) {
	if _, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return r.create(ctx, rs)
	}

	var created rules.CountryPayrollRules
	err := NewTxManager(r.db).WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = r.create(ctx, rs)
		return err
	})
	if err != nil {
		return rules.CountryPayrollRules{}, err
	}

	return created, nil
}

func (r *rulesRepository) create(ctx context.Context, rs rules.CountryPayrollRules) (rules.CountryPayrollRules, error) {
	q := GetQuerier(ctx, r.db)

	// Rule rows referenced by completed runs must stay readable forever, so a
	// replacement deactivates the previous row instead of mutating it.
	deactivate := `
		UPDATE country_payroll_rules
		SET is_active = false, updated_at = NOW()
		WHERE country_code = $1 AND year = $2 AND is_active = true
	`
	if _, err := q.Exec(ctx, deactivate, rs.CountryCode, rs.Year); err != nil {
		return rules.CountryPayrollRules{}, fmt.Errorf("failed to deactivate previous payroll rules: %w", err)
	}

	if rs.ID == "" {
		rs.ID = uuid.NewString()
	}

	query := `
		INSERT INTO country_payroll_rules (
			id, country_code, year, minimum_wage,
			health_employee_pct, pension_employee_pct,
			health_employer_pct, pension_employer_pct,
			transport_allowance, transport_allowance_salary_cap, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, country_code, year, minimum_wage,
			health_employee_pct, pension_employee_pct,
			health_employer_pct, pension_employer_pct,
			transport_allowance, transport_allowance_salary_cap,
			is_active, created_at, updated_at
	`

	var created rules.CountryPayrollRules
	err := q.QueryRow(ctx, query,
		rs.ID, rs.CountryCode, rs.Year, rs.MinimumWage,
		rs.HealthEmployeePct, rs.PensionEmployeePct,
		rs.HealthEmployerPct, rs.PensionEmployerPct,
		rs.TransportAllowance, rs.TransportAllowanceSalaryCap, rs.IsActive,
	).Scan(
		&created.ID, &created.CountryCode, &created.Year, &created.MinimumWage,
		&created.HealthEmployeePct, &created.PensionEmployeePct,
		&created.HealthEmployerPct, &created.PensionEmployerPct,
		&created.TransportAllowance, &created.TransportAllowanceSalaryCap,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return rules.CountryPayrollRules{}, fmt.Errorf("failed to create payroll rules: %w", err)
	}

	return created, nil
}
