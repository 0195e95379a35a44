package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidPunchType):
		BadRequest(w, "Punch type must be IN or OUT", nil)
	case errors.Is(err, attendance.ErrPunchBeforeDay):
		BadRequest(w, "Punch timestamp does not belong to the given date", nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Lateness domain errors
	case errors.Is(err, lateness.ErrDuplicateApplication):
		Conflict(w, "An application already exists for this attendance record")
	case errors.Is(err, lateness.ErrApplicationNotFound):
		NotFound(w, "Late application not found")
	case errors.Is(err, lateness.ErrApplicationProcessed):
		Conflict(w, "Late application already processed")
	case errors.Is(err, lateness.ErrSelfApproval):
		Forbidden(w, "Applicants cannot decide their own application")
	case errors.Is(err, lateness.ErrNotLate):
		BadRequest(w, "Attendance record is not late", nil)
	case errors.Is(err, lateness.ErrIncompleteDay):
		BadRequest(w, "Attendance record has no clock-out", nil)
	case errors.Is(err, lateness.ErrSettingsNotFound):
		NotFound(w, "Late settings not configured")
	case errors.Is(err, lateness.ErrLatenessDisabled):
		BadRequest(w, "Lateness policy is disabled", nil)

	// Employee / schedule domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "No shift configured for employee")

	// Access errors
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrApproverAccessRequired):
		Forbidden(w, "Approver access required")
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
