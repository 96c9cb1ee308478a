package permission

import (
	"context"
	"time"
)

// WindowRepository looks up approved permission windows.
type WindowRepository interface {
	// ListApprovedByDate returns every approved window for a civil day,
	// keyed by employee ID.
	ListApprovedByDate(ctx context.Context, date time.Time) (map[string][]Window, error)
}
