package dashboard

import "context"

// DashboardService exposes the late-login report consumed by the dashboard.
type DashboardService interface {
	// GetLateLoginsForToday evaluates today's check-ins against shift
	// schedules and approved permission windows.
	GetLateLoginsForToday(ctx context.Context) (LateLoginsResponse, error)
}

type LateLoginsResponse struct {
	Count int         `json:"count"`
	Data  []LateLogin `json:"data"`
}
