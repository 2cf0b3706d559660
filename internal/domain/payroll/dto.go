package payroll

import (
	"time"

	"github.com/nominahr/nomina-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if startOK && endOK && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be after start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
}

// ========== RUN DTOs ==========

type ExecuteRunRequest struct {
	PeriodID string `json:"period_id"`
}

func (r *ExecuteRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID            string            `json:"id"`
	PeriodID      string            `json:"period_id"`
	RunNumber     int               `json:"run_number"`
	Status        string            `json:"status"`
	IsFinal       bool              `json:"is_final"`
	ExecutedAt    string            `json:"executed_at"`
	EmployeeCount int               `json:"employee_count"`
	TotalGross    decimal.Decimal   `json:"total_gross"`
	TotalNet      decimal.Decimal   `json:"total_net"`
	RulesSnapshot map[string]string `json:"rules_snapshot,omitempty"`
	ErrorDetail   *string           `json:"error_detail,omitempty"`
}

type PayslipResponse struct {
	ID                          string          `json:"id"`
	RunID                       string          `json:"run_id"`
	EmploymentID                string          `json:"employment_id"`
	BaseSalary                  decimal.Decimal `json:"base_salary"`
	TransportAllowanceApplied   decimal.Decimal `json:"transport_allowance_applied"`
	HealthEmployeeDeduction     decimal.Decimal `json:"health_employee_deduction"`
	PensionEmployeeDeduction    decimal.Decimal `json:"pension_employee_deduction"`
	HealthEmployerContribution  decimal.Decimal `json:"health_employer_contribution"`
	PensionEmployerContribution decimal.Decimal `json:"pension_employer_contribution"`
	GrossPay                    decimal.Decimal `json:"gross_pay"`
	TotalEmployeeDeductions     decimal.Decimal `json:"total_employee_deductions"`
	NetPay                      decimal.Decimal `json:"net_pay"`
}

func NewRunResponse(r PayrollRun) RunResponse {
	return RunResponse{
		ID:            r.ID,
		PeriodID:      r.PeriodID,
		RunNumber:     r.RunNumber,
		Status:        string(r.Status),
		IsFinal:       r.IsFinal,
		ExecutedAt:    r.ExecutedAt.Format(time.RFC3339),
		EmployeeCount: r.EmployeeCount,
		TotalGross:    r.TotalGross,
		TotalNet:      r.TotalNet,
		RulesSnapshot: r.RulesSnapshot,
		ErrorDetail:   r.ErrorDetail,
	}
}

func NewPayslipResponse(l PayrollLine) PayslipResponse {
	return PayslipResponse{
		ID:                          l.ID,
		RunID:                       l.RunID,
		EmploymentID:                l.EmploymentID,
		BaseSalary:                  l.BaseSalary,
		TransportAllowanceApplied:   l.TransportAllowanceApplied,
		HealthEmployeeDeduction:     l.HealthEmployeeDeduction,
		PensionEmployeeDeduction:    l.PensionEmployeeDeduction,
		HealthEmployerContribution:  l.HealthEmployerContribution,
		PensionEmployerContribution: l.PensionEmployerContribution,
		GrossPay:                    l.GrossPay,
		TotalEmployeeDeductions:     l.TotalEmployeeDeductions,
		NetPay:                      l.NetPay,
	}
}
