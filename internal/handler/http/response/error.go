package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal/internal/domain/report"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	status, detail := Classify(err)
	writeJSON(w, status, Response{Success: false, Error: &detail})
}

// ActionError writes err as a failed ActionResult.
func ActionError(w http.ResponseWriter, err error) {
	status, detail := Classify(err)
	var data interface{}
	if len(detail.Details) > 0 {
		data = detail.Details
	}
	Action(w, status, false, detail.Message, data)
}

// Classify returns the HTTP status and error body for err. Unknown errors are
// logged and reported as a generic 500.
func Classify(err error) (int, ErrorDetail) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: validationErrs.ToMap(),
		}
	}

	var insufficient *timeoff.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return http.StatusBadRequest, ErrorDetail{
			Code:    "INSUFFICIENT_BALANCE",
			Message: fmt.Sprintf("Insufficient %s balance", insufficient.LeaveType),
			Details: map[string]string{
				"leave_type": string(insufficient.LeaveType),
				"requested":  strconv.Itoa(insufficient.Requested),
				"remaining":  strconv.Itoa(insufficient.Remaining),
				"shortfall":  strconv.Itoa(insufficient.Shortfall()),
			},
		}
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: "Invalid or expired token"}
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: "Authentication required"}
	case errors.Is(err, auth.ErrCSRFTokenMismatch):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: "CSRF token mismatch"}
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: "Insufficient permissions"}

	// Time off domain errors
	case errors.Is(err, timeoff.ErrRequestNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Time off request not found"}
	case errors.Is(err, timeoff.ErrRequestAlreadyProcessed):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: "Time off request already processed"}
	case errors.Is(err, timeoff.ErrEmployeeNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Employee not found"}
	case errors.Is(err, timeoff.ErrInvalidRange):
		return http.StatusUnprocessableEntity, ErrorDetail{Code: "INVALID_RANGE", Message: "end_date must be on or after start_date"}
	case errors.Is(err, timeoff.ErrInvalidArgument):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: "Invalid argument"}

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Employee not found"}
	case errors.Is(err, employee.ErrEmailExists):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: "Email already registered"}

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Holiday not found"}
	case errors.Is(err, holiday.ErrHolidayDateExists):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: "A holiday already exists on that date"}
	case errors.Is(err, holiday.ErrInvalidCalendar):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: "Invalid holiday calendar"}

	// Report domain errors
	case errors.Is(err, report.ErrReportGenerationFailed):
		slog.Error("report generation failed", "error", err)
		return http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "Failed to generate report"}
	}

	// Default, including timeoff.ErrPersistence
	slog.Error("unhandled error", "error", err)
	return http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An unexpected error occurred"}
}
