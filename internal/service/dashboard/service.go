package dashboard

import (
	"context"
	"fmt"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/dashboard"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/permission"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboardRepo  dashboard.DashboardRepository
	permissionRepo permission.WindowRepository
	resolver       *civilday.Resolver
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	permissionRepo permission.WindowRepository,
	resolver *civilday.Resolver,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepo:  dashboardRepo,
		permissionRepo: permissionRepo,
		resolver:       resolver,
	}
}

// GetLateLoginsForToday implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetLateLoginsForToday(ctx context.Context) (dashboard.LateLoginsResponse, error) {
	today := s.resolver.Today()

	var (
		candidates []dashboard.LateCandidate
		windows    map[string][]permission.Window
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.dashboardRepo.ListLateCandidates(gctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		windows, err = s.permissionRepo.ListApprovedByDate(gctx, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.LateLoginsResponse{}, fmt.Errorf("failed to load late login inputs: %w", err)
	}

	for i := range candidates {
		candidates[i].Windows = windows[candidates[i].EmployeeID]
	}

	late := dashboard.EvaluateLateLogins(s.resolver, candidates)
	return dashboard.LateLoginsResponse{Count: len(late), Data: late}, nil
}
