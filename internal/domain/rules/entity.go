package rules

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountryPayrollRules - Statutory parameter set for one (country_code, year).
// Rows are never mutated once a completed run references them; activating a
// replacement deactivates the previous row and inserts a new one.
type CountryPayrollRules struct {
	ID                          string
	CountryCode                 string
	Year                        int
	MinimumWage                 decimal.Decimal
	HealthEmployeePct           decimal.Decimal
	PensionEmployeePct          decimal.Decimal
	HealthEmployerPct           decimal.Decimal
	PensionEmployerPct          decimal.Decimal
	TransportAllowance          decimal.Decimal
	TransportAllowanceSalaryCap decimal.Decimal
	IsActive                    bool
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}
