package dashboard

import (
	"context"
	"time"
)

// DashboardRepository loads the joined rows the lateness evaluator runs
// over: one row per attendance day with the employee's name and shift start,
// active employees only, permission windows merged in by the service.
type DashboardRepository interface {
	ListLateCandidates(ctx context.Context, date time.Time) ([]LateCandidate, error)
}
