package payroll

import (
	"fmt"

	"github.com/nominahr/nomina-backend-go/internal/domain/employment"
	"github.com/nominahr/nomina-backend-go/internal/domain/payroll"
	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
)

// CalculateLine computes one employment's payslip line under the given rule
// set. It is deterministic and does no I/O; a run is reproducible because
// every line is a pure function of (employment, rules).
//
// Statutory conventions encoded here:
//   - the transport allowance is granted when base_salary <= salary cap,
//     boundary inclusive, and is never part of the contribution base;
//   - health and pension are computed on base_salary only, never gross;
//   - every monetary line item is rounded to 2 places, half up, per item, so
//     sums of rounded parts do not depend on calculation order.
func CalculateLine(emp employment.Employment, rs rules.CountryPayrollRules) (payroll.PayrollLine, error) {
	if emp.BaseSalary == nil || !emp.BaseSalary.IsPositive() {
		return payroll.PayrollLine{}, fmt.Errorf("employment %s: %w", emp.ID, payroll.ErrInvalidCompensation)
	}

	baseSalary := emp.BaseSalary.Round(2)

	transportAllowance := decimal.Zero.Round(2)
	if baseSalary.LessThanOrEqual(rs.TransportAllowanceSalaryCap) {
		transportAllowance = rs.TransportAllowance.Round(2)
	}

	healthEmployee := baseSalary.Mul(rs.HealthEmployeePct).Round(2)
	pensionEmployee := baseSalary.Mul(rs.PensionEmployeePct).Round(2)
	healthEmployer := baseSalary.Mul(rs.HealthEmployerPct).Round(2)
	pensionEmployer := baseSalary.Mul(rs.PensionEmployerPct).Round(2)

	grossPay := baseSalary.Add(transportAllowance)
	totalDeductions := healthEmployee.Add(pensionEmployee)
	netPay := grossPay.Sub(totalDeductions)

	return payroll.PayrollLine{
		EmploymentID:                emp.ID,
		BaseSalary:                  baseSalary,
		TransportAllowanceApplied:   transportAllowance,
		HealthEmployeeDeduction:     healthEmployee,
		PensionEmployeeDeduction:    pensionEmployee,
		HealthEmployerContribution:  healthEmployer,
		PensionEmployerContribution: pensionEmployer,
		GrossPay:                    grossPay,
		TotalEmployeeDeductions:     totalDeductions,
		NetPay:                      netPay,
	}, nil
}
