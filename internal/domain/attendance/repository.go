package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the ledger store. Writes are conditional on the
// document version so concurrent mutations of the same (employee, day) row
// never interleave destructively; callers retry on ErrVersionConflict.
type AttendanceRepository interface {
	// Create inserts a new day document. The (employee_id, date) pair is
	// unique; a duplicate insert fails with ErrVersionConflict so the
	// caller re-reads and takes the update path.
	Create(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// Update persists the document if its stored version still matches
	// day.Version, bumping the version; otherwise ErrVersionConflict.
	Update(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// GetByEmployeeAndDate loads the single day document, or
	// ErrAttendanceNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (AttendanceDay, error)

	// ListByDate loads every employee's document for a civil day, with
	// employee name/department joined, ordered by employee name.
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceDay, error)

	// ListByEmployeeRange loads an employee's documents with civil-day
	// boundaries in [start, end], newest first.
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceDay, error)

	// ListByRange loads all documents in [start, end) for reporting.
	ListByRange(ctx context.Context, start, end time.Time) ([]AttendanceDay, error)
}
