package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusCalculating RunStatus = "calculating"
	RunStatusCompleted   RunStatus = "completed"
	RunStatusError       RunStatus = "error"
	RunStatusSuperseded  RunStatus = "superseded"
)

// PayrollRun - One versioned calculation attempt for a period. Run numbers
// increase per period starting at 1; at most one run per period carries
// is_final, and a final run and its lines are immutable.
type PayrollRun struct {
	ID          string
	PeriodID    string
	RunNumber   int
	Status      RunStatus
	IsFinal     bool
	ExecutedAt  time.Time
	ErrorDetail *string

	// RulesSnapshot maps country_code to the exact rules row the run was
	// calculated with, for reproducibility.
	RulesSnapshot map[string]string

	EmployeeCount int
	TotalGross    decimal.Decimal
	TotalNet      decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayrollLine - One employment's computed compensation breakdown within a
// run. Identities the calculator guarantees:
//
//	gross_pay = base_salary + transport_allowance_applied
//	net_pay   = gross_pay - total_employee_deductions
type PayrollLine struct {
	ID           string
	RunID        string
	EmploymentID string

	BaseSalary                  decimal.Decimal
	TransportAllowanceApplied   decimal.Decimal
	HealthEmployeeDeduction     decimal.Decimal
	PensionEmployeeDeduction    decimal.Decimal
	HealthEmployerContribution  decimal.Decimal
	PensionEmployerContribution decimal.Decimal
	GrossPay                    decimal.Decimal
	TotalEmployeeDeductions     decimal.Decimal
	NetPay                      decimal.Decimal

	CreatedAt time.Time
}
