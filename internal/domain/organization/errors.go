package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrPeriodNotFound       = errors.New("payroll period not found")
	ErrPeriodOverlaps       = errors.New("payroll period overlaps an existing period")
)
