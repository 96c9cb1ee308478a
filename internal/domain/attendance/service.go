package attendance

import (
	"context"
	"time"
)

// AttendanceService defines the session ledger operations and the disconnect
// reconciler entry point.
type AttendanceService interface {
	// CheckIn opens a new session for the employee's current civil day
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the current open session, computing worked hours
	// server-side from the recorded timestamps and breaks
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// StartBreak opens a break inside the current open session
	StartBreak(ctx context.Context, req BreakRequest) (BreakMarkResponse, error)

	// EndBreak closes the current open break
	EndBreak(ctx context.Context, req BreakRequest) (BreakMarkResponse, error)

	// GetByDate returns the employee's single day record
	GetByDate(ctx context.Context, req GetByDateRequest) (AttendanceResponse, error)

	// ForceCloseOpenSession closes a dangling open session left behind by a
	// disconnected employee. Idempotent: a day that does not exist or is
	// already closed is a clean no-op.
	ForceCloseOpenSession(ctx context.Context, employeeID string, now time.Time) error
}
