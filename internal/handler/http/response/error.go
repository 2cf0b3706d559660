package response

import (
	"errors"
	"net/http"

	"github.com/nominahr/nomina-backend-go/internal/domain/organization"
	"github.com/nominahr/nomina-backend-go/internal/domain/payroll"
	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/nominahr/nomina-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Every error class gets a
// distinct machine code so callers can tell retry (concurrency) from fix-data
// (validation, configuration) from change-operation (state).
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Not found
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrNoCompletedRun):
		NotFound(w, "Period has no completed run")

	// Concurrency: recoverable, caller may retry later
	case errors.Is(err, payroll.ErrRunInProgress):
		Conflict(w, "RUN_IN_PROGRESS", "A calculation is already in progress for this period")

	// State: operation is illegal for the current lifecycle state
	case errors.Is(err, payroll.ErrRunAlreadyFinal):
		Conflict(w, "ALREADY_FINALIZED", "A run for this period has already been finalized")
	case errors.Is(err, organization.ErrPeriodOverlaps):
		Conflict(w, "PERIOD_OVERLAPS", "Period overlaps an existing period")
	case errors.Is(err, payroll.ErrInvalidRunState):
		BadRequest(w, "INVALID_RUN_STATE", "Run is not in a state that allows this transition")

	// Configuration / data: caller must fix inputs before retrying
	case errors.Is(err, rules.ErrRulesNotFound):
		BadRequest(w, "RULES_NOT_FOUND", err.Error())
	case errors.Is(err, payroll.ErrInvalidCompensation):
		BadRequest(w, "INVALID_COMPENSATION", err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
