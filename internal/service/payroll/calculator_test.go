package payroll

import (
	"testing"

	"github.com/nominahr/nomina-backend-go/internal/domain/employment"
	domain "github.com/nominahr/nomina-backend-go/internal/domain/payroll"
	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colombianRules2025() rules.CountryPayrollRules {
	return rules.CountryPayrollRules{
		ID:                          "rules-co-2025",
		CountryCode:                 "CO",
		Year:                        2025,
		MinimumWage:                 decimal.NewFromInt(1300000),
		HealthEmployeePct:           decimal.NewFromFloat(0.04),
		PensionEmployeePct:          decimal.NewFromFloat(0.04),
		HealthEmployerPct:           decimal.NewFromFloat(0.085),
		PensionEmployerPct:          decimal.NewFromFloat(0.12),
		TransportAllowance:          decimal.NewFromInt(140000),
		TransportAllowanceSalaryCap: decimal.NewFromInt(2600000),
		IsActive:                    true,
	}
}

func employmentWithSalary(salary decimal.Decimal) employment.Employment {
	return employment.Employment{
		ID:           "emp-1",
		CountryCode:  "CO",
		BaseSalary:   &salary,
		SalaryPeriod: employment.SalaryPeriodMonthly,
		IsActive:     true,
	}
}

func TestCalculateLine_MinimumWageWithTransportAllowance(t *testing.T) {
	line, err := CalculateLine(employmentWithSalary(decimal.NewFromInt(1300000)), colombianRules2025())
	require.NoError(t, err)

	assert.True(t, line.TransportAllowanceApplied.Equal(decimal.NewFromInt(140000)))
	assert.True(t, line.HealthEmployeeDeduction.Equal(decimal.NewFromInt(52000)))
	assert.True(t, line.PensionEmployeeDeduction.Equal(decimal.NewFromInt(52000)))
	assert.True(t, line.HealthEmployerContribution.Equal(decimal.NewFromInt(110500)))
	assert.True(t, line.PensionEmployerContribution.Equal(decimal.NewFromInt(156000)))
	assert.True(t, line.GrossPay.Equal(decimal.NewFromInt(1440000)))
	assert.True(t, line.TotalEmployeeDeductions.Equal(decimal.NewFromInt(104000)))
	assert.True(t, line.NetPay.Equal(decimal.NewFromInt(1336000)), "net was %s", line.NetPay)
}

func TestCalculateLine_AboveCapGetsNoTransportAllowance(t *testing.T) {
	line, err := CalculateLine(employmentWithSalary(decimal.NewFromInt(3000000)), colombianRules2025())
	require.NoError(t, err)

	assert.True(t, line.TransportAllowanceApplied.IsZero())
	assert.True(t, line.HealthEmployeeDeduction.Equal(decimal.NewFromInt(120000)))
	assert.True(t, line.PensionEmployeeDeduction.Equal(decimal.NewFromInt(120000)))
	assert.True(t, line.GrossPay.Equal(decimal.NewFromInt(3000000)))
	assert.True(t, line.NetPay.Equal(decimal.NewFromInt(2760000)))
}

func TestCalculateLine_CapBoundaryIsInclusive(t *testing.T) {
	rs := colombianRules2025()

	atCap, err := CalculateLine(employmentWithSalary(rs.TransportAllowanceSalaryCap), rs)
	require.NoError(t, err)
	assert.True(t, atCap.TransportAllowanceApplied.Equal(rs.TransportAllowance))

	justAbove, err := CalculateLine(employmentWithSalary(rs.TransportAllowanceSalaryCap.Add(decimal.NewFromFloat(0.01))), rs)
	require.NoError(t, err)
	assert.True(t, justAbove.TransportAllowanceApplied.IsZero())
}

func TestCalculateLine_RoundsEachItemToTwoPlaces(t *testing.T) {
	rs := colombianRules2025()
	rs.HealthEmployeePct = decimal.NewFromFloat(0.0333)

	line, err := CalculateLine(employmentWithSalary(decimal.NewFromFloat(1234567.89)), rs)
	require.NoError(t, err)

	// 1234567.89 * 0.0333 = 41111.11...; rounded half up per item.
	assert.True(t, line.HealthEmployeeDeduction.Equal(decimal.NewFromFloat(41111.11)), "got %s", line.HealthEmployeeDeduction)
	assert.Equal(t, int32(-2), line.HealthEmployeeDeduction.Exponent())

	expectedNet := line.GrossPay.Sub(line.HealthEmployeeDeduction).Sub(line.PensionEmployeeDeduction)
	assert.True(t, line.NetPay.Equal(expectedNet))
}

func TestCalculateLine_MissingSalaryIsInvalidCompensation(t *testing.T) {
	emp := employmentWithSalary(decimal.Zero)
	emp.BaseSalary = nil

	_, err := CalculateLine(emp, colombianRules2025())
	assert.ErrorIs(t, err, domain.ErrInvalidCompensation)
}

func TestCalculateLine_NonPositiveSalaryIsInvalidCompensation(t *testing.T) {
	for _, salary := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := CalculateLine(employmentWithSalary(salary), colombianRules2025())
		assert.ErrorIs(t, err, domain.ErrInvalidCompensation)
	}
}

func TestCalculateLine_Deterministic(t *testing.T) {
	emp := employmentWithSalary(decimal.NewFromFloat(2547893.27))
	rs := colombianRules2025()

	first, err := CalculateLine(emp, rs)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := CalculateLine(emp, rs)
		require.NoError(t, err)
		assert.True(t, first.NetPay.Equal(again.NetPay))
		assert.True(t, first.GrossPay.Equal(again.GrossPay))
		assert.True(t, first.HealthEmployerContribution.Equal(again.HealthEmployerContribution))
	}
}
