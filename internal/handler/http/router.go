package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/EethalTeam/enis-hrm-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	attendanceHandler AttendanceHandler,
	dashboardHandler DashboardHandler,
	reportHandler ReportHandler,
	presenceHandler PresenceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "enis-hrm"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/checkIn", attendanceHandler.CheckIn)
			r.Post("/checkOut", attendanceHandler.CheckOut)
			r.Post("/breakStart", attendanceHandler.BreakStart)
			r.Post("/breakEnd", attendanceHandler.BreakEnd)
			r.Post("/getAttendanceByDate", attendanceHandler.GetByDate)
			r.Post("/getAllAttendanceByDate", reportHandler.GetAllByDate)
			r.Post("/getEmployeeAttendanceHistory", reportHandler.GetEmployeeHistory)
			r.Post("/getAttendanceSummary", reportHandler.GetAttendanceSummary)
			r.Post("/report", reportHandler.GetMonthlyReport)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Post("/getLateLogins", dashboardHandler.GetLateLogins)
		})

		r.Route("/presence", func(r chi.Router) {
			r.Get("/stream", presenceHandler.Stream)
			r.Post("/heartbeat", presenceHandler.Heartbeat)
			r.Post("/tabClosing", presenceHandler.TabClosing)
			r.Post("/cronJobLogOut", presenceHandler.ForceLogoutSweep)
		})
	})
	return r
}
