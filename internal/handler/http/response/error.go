package response

import (
	"errors"
	"net/http"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Session state conflicts
// are client mistakes, not server faults, so they land on 400 alongside
// validation failures.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session state conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNoActiveCheckIn),
		errors.Is(err, attendance.ErrNoActiveSession),
		errors.Is(err, attendance.ErrAlreadyOnBreak),
		errors.Is(err, attendance.ErrNoActiveBreak),
		errors.Is(err, attendance.ErrBreakAlreadyEnded):
		BadRequest(w, err.Error(), nil)

	// Missing records
	case errors.Is(err, attendance.ErrNoAttendanceRecord):
		NotFound(w, "No attendance record found for this date")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Writes that never converged past concurrent mutations
	case errors.Is(err, attendance.ErrVersionConflict):
		Conflict(w, "Attendance record was modified concurrently, please retry")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
