package payroll

import "errors"

var (
	ErrRunNotFound         = errors.New("payroll run not found")
	ErrRunInProgress       = errors.New("a calculation is already in progress for this period")
	ErrInvalidRunState     = errors.New("run is not in a state that allows this transition")
	ErrRunAlreadyFinal     = errors.New("a run for this period has already been finalized")
	ErrInvalidCompensation = errors.New("employment has missing or non-positive base salary")
	ErrNoCompletedRun      = errors.New("period has no completed run")
)
