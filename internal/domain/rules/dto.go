package rules

import (
	"github.com/nominahr/nomina-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRulesRequest struct {
	CountryCode                 string          `json:"country_code"`
	Year                        int             `json:"year"`
	MinimumWage                 decimal.Decimal `json:"minimum_wage"`
	HealthEmployeePct           decimal.Decimal `json:"health_employee_pct"`
	PensionEmployeePct          decimal.Decimal `json:"pension_employee_pct"`
	HealthEmployerPct           decimal.Decimal `json:"health_employer_pct"`
	PensionEmployerPct          decimal.Decimal `json:"pension_employer_pct"`
	TransportAllowance          decimal.Decimal `json:"transport_allowance"`
	TransportAllowanceSalaryCap decimal.Decimal `json:"transport_allowance_salary_cap"`
}

func (r *CreateRulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidCountryCode(r.CountryCode) {
		errs = append(errs, validator.ValidationError{Field: "country_code", Message: "must be a two-letter ISO country code"})
	}
	if !validator.IsValidFiscalYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a four-digit year"})
	}
	if r.MinimumWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "minimum_wage", Message: "must be non-negative"})
	}
	if r.TransportAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "transport_allowance", Message: "must be non-negative"})
	}
	if r.TransportAllowanceSalaryCap.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "transport_allowance_salary_cap", Message: "must be non-negative"})
	}

	pcts := map[string]decimal.Decimal{
		"health_employee_pct":  r.HealthEmployeePct,
		"pension_employee_pct": r.PensionEmployeePct,
		"health_employer_pct":  r.HealthEmployerPct,
		"pension_employer_pct": r.PensionEmployerPct,
	}
	for field, pct := range pcts {
		if !validator.IsFraction(pct) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a fraction between 0 and 1"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RulesResponse struct {
	ID                          string          `json:"id"`
	CountryCode                 string          `json:"country_code"`
	Year                        int             `json:"year"`
	MinimumWage                 decimal.Decimal `json:"minimum_wage"`
	HealthEmployeePct           decimal.Decimal `json:"health_employee_pct"`
	PensionEmployeePct          decimal.Decimal `json:"pension_employee_pct"`
	HealthEmployerPct           decimal.Decimal `json:"health_employer_pct"`
	PensionEmployerPct          decimal.Decimal `json:"pension_employer_pct"`
	TransportAllowance          decimal.Decimal `json:"transport_allowance"`
	TransportAllowanceSalaryCap decimal.Decimal `json:"transport_allowance_salary_cap"`
	IsActive                    bool            `json:"is_active"`
}
