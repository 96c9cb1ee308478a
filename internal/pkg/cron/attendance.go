package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
	"github.com/EethalTeam/enis-hrm-go/internal/repository/postgresql"
)

// AttendanceJobs holds the end-of-day sweep: every employee still flagged as
// logged in gets their dangling session force-closed and their login flag
// cleared.
type AttendanceJobs struct {
	db            *database.DB
	attendanceSvc attendance.AttendanceService
	employeeRepo  employee.EmployeeRepository
	resolver      *civilday.Resolver
	sweepHour     int
}

func NewAttendanceJobs(
	db *database.DB,
	attendanceSvc attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	resolver *civilday.Resolver,
	sweepHour int,
) *AttendanceJobs {
	return &AttendanceJobs{
		db:            db,
		attendanceSvc: attendanceSvc,
		employeeRepo:  employeeRepo,
		resolver:      resolver,
		sweepHour:     sweepHour,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("force_logout_sweep", 1*time.Hour, j.ForceLogoutSweep)
}

// ForceLogoutSweep runs hourly but acts only during the configured
// wall-clock hour, so the sweep lands once per civil day regardless of
// server timezone.
func (j *AttendanceJobs) ForceLogoutSweep(ctx context.Context) error {
	if hour, _ := j.resolver.Clock(time.Now().UTC()); hour != j.sweepHour {
		return nil
	}
	return j.SweepNow(ctx)
}

// SweepNow force-closes every logged-in employee's open session right away.
// It backs both the scheduled sweep and the manual trigger endpoint, and is
// safe to run repeatedly.
func (j *AttendanceJobs) SweepNow(ctx context.Context) error {
	employees, err := j.employeeRepo.ListCurrentlyLoggedIn(ctx)
	if err != nil {
		return fmt.Errorf("failed to list logged-in employees: %w", err)
	}
	if len(employees) == 0 {
		slog.Info("Cron: No logged-in employees to sweep")
		return nil
	}

	now := time.Now().UTC()
	swept := 0
	for _, emp := range employees {
		// Close and flag-clear commit together; a failed employee is
		// retried whole on the next sweep.
		err := postgresql.WithTransaction(ctx, j.db, func(txCtx context.Context) error {
			if err := j.attendanceSvc.ForceCloseOpenSession(txCtx, emp.ID, now); err != nil {
				return err
			}
			// Clear the flag even for employees that never produced
			// a ledger record today.
			return j.employeeRepo.SetLoggedIn(txCtx, emp.ID, false, now)
		})
		if err != nil {
			slog.Error("Cron: Failed to sweep employee", "employee_id", emp.ID, "error", err)
			continue
		}
		swept++
	}

	slog.Info("Cron: Force-logout sweep completed", "swept", swept, "total", len(employees))
	return nil
}
