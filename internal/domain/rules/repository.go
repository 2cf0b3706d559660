package rules

import "context"

// Repository defines data access for statutory rule sets.
type Repository interface {
	// GetActive returns the single active rule set for the exact
	// (countryCode, year) key. Misses map to ErrRulesNotFound.
	GetActive(ctx context.Context, countryCode string, year int) (CountryPayrollRules, error)

	// Create inserts a new rule set. If an active row already exists for the
	// same key it is deactivated in the same transaction, never mutated
	// beyond the is_active flag.
	Create(ctx context.Context, rs CountryPayrollRules) (CountryPayrollRules, error)
}

// Registry resolves the statutory parameters a payslip calculation runs
// under. Read-only and safe for unlimited concurrent readers.
type Registry interface {
	Resolve(ctx context.Context, countryCode string, year int) (CountryPayrollRules, error)
}
