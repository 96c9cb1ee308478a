package attendance

import "errors"

// Attendance domain errors
var (
	// Session state conflicts
	ErrAlreadyCheckedIn  = errors.New("already checked in, please check out first")
	ErrNoActiveCheckIn   = errors.New("no active check-in found")
	ErrNoActiveSession   = errors.New("no active session to start a break")
	ErrAlreadyOnBreak    = errors.New("already on a break, please end it first")
	ErrNoActiveBreak     = errors.New("no active break to end")
	ErrBreakAlreadyEnded = errors.New("this break already ended")

	// General errors
	ErrNoAttendanceRecord = errors.New("no attendance record found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")

	// Storage-level write conflict, retried by the service and never
	// surfaced to callers directly.
	ErrVersionConflict = errors.New("attendance record was modified concurrently")
)
