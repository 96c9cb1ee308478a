package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the directory the attendance core consults and
// notifies. Presence writes are best-effort side effects; failures are
// logged by the caller and never roll back ledger mutations.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// CountActive returns the number of active employees, the absent
	// baseline for daily summaries.
	CountActive(ctx context.Context) (int, error)

	// ListCurrentlyLoggedIn returns employees flagged as logged in; the
	// end-of-day sweep force-closes each of them.
	ListCurrentlyLoggedIn(ctx context.Context) ([]Employee, error)

	// SetPresence updates the advisory live status.
	SetPresence(ctx context.Context, id string, presence Presence) error

	// SetLoggedIn flips the login flag; when loggedIn is false the given
	// instant is stamped as lastLoggedIn.
	SetLoggedIn(ctx context.Context, id string, loggedIn bool, at time.Time) error
}

// ShiftRepository resolves the per-employee shift window for lateness
// evaluation.
type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
}
