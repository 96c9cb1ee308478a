package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/config"
	appHTTP "github.com/EethalTeam/enis-hrm-go/internal/handler/http"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/cron"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/presence"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/sse"
	"github.com/EethalTeam/enis-hrm-go/internal/repository/postgresql"
	attendanceService "github.com/EethalTeam/enis-hrm-go/internal/service/attendance"
	dashboardService "github.com/EethalTeam/enis-hrm-go/internal/service/dashboard"
	reportService "github.com/EethalTeam/enis-hrm-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	resolver, err := civilday.NewResolver(cfg.Attendance.CivilTimezone)
	if err != nil {
		fmt.Println("Error loading civil timezone:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	hub := sse.NewHub()

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, resolver, hub)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, permissionRepo, resolver)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo, shiftRepo, resolver)

	tracker := presence.NewTracker(cfg.Attendance.HeartbeatGrace, attendanceSvc.ForceCloseOpenSession)
	defer tracker.Shutdown()

	jobs := cron.NewAttendanceJobs(db, attendanceSvc, employeeRepo, resolver, cfg.Attendance.SweepHour)
	scheduler := cron.NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	presenceHandler := appHTTP.NewPresenceHandler(hub, tracker, jobs)

	router := appHTTP.NewRouter(cfg, attendanceHandler, dashboardHandler, reportHandler, presenceHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
