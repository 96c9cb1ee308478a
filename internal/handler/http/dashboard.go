package http

import (
	"net/http"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/dashboard"
	"github.com/EethalTeam/enis-hrm-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetLateLogins(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetLateLogins implements DashboardHandler. The report always targets the
// current civil day; the request carries no parameters.
func (h *dashboardHandlerImpl) GetLateLogins(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetLateLoginsForToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
