package rules

import "errors"

var (
	ErrRulesNotFound = errors.New("no active payroll rules for country and year")
)
