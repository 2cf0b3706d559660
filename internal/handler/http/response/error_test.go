package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nominahr/nomina-backend-go/internal/domain/organization"
	"github.com/nominahr/nomina-backend-go/internal/domain/payroll"
	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
	"github.com/nominahr/nomina-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusAndCodeMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"run not found", payroll.ErrRunNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"period not found", organization.ErrPeriodNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"no completed run", payroll.ErrNoCompletedRun, http.StatusNotFound, "NOT_FOUND"},
		{"run in progress", payroll.ErrRunInProgress, http.StatusConflict, "RUN_IN_PROGRESS"},
		{"already finalized", payroll.ErrRunAlreadyFinal, http.StatusConflict, "ALREADY_FINALIZED"},
		{"period overlaps", organization.ErrPeriodOverlaps, http.StatusConflict, "PERIOD_OVERLAPS"},
		{"invalid run state", payroll.ErrInvalidRunState, http.StatusBadRequest, "INVALID_RUN_STATE"},
		{"rules not found", rules.ErrRulesNotFound, http.StatusBadRequest, "RULES_NOT_FOUND"},
		{"invalid compensation", payroll.ErrInvalidCompensation, http.StatusBadRequest, "INVALID_COMPENSATION"},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_WrappedErrorsStillMap(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("resolve rules for CO/2025: %w", rules.ErrRulesNotFound))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "RULES_NOT_FOUND")
	assert.Contains(t, rec.Body.String(), "CO/2025")
}

func TestHandleError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}
