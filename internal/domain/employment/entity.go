package employment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employment is a read model supplied by the employee module. The payroll
// core never writes it.
type Employment struct {
	ID              string
	OrganizationID  string
	CountryCode     string
	BaseSalary      *decimal.Decimal
	SalaryPeriod    SalaryPeriod
	IsActive        bool
	HireDate        time.Time
	TerminationDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type SalaryPeriod string

const (
	SalaryPeriodMonthly  SalaryPeriod = "monthly"
	SalaryPeriodBiweekly SalaryPeriod = "biweekly"
	SalaryPeriodWeekly   SalaryPeriod = "weekly"
)
