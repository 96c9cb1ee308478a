package report

import (
	"context"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
)

// ReportService reads the ledger and rolls it up; it never mutates
// attendance records.
type ReportService interface {
	// GetAllByDate returns every employee's record for a civil day with
	// derived totals recomputed when the cache is missing.
	GetAllByDate(ctx context.Context, req attendance.AllByDateRequest) (AllByDateResponse, error)

	// GetEmployeeHistory returns an inclusive date-range history,
	// defaulting to the trailing 90 days.
	GetEmployeeHistory(ctx context.Context, req attendance.HistoryRequest) (HistoryResponse, error)

	// GetDailySummary computes the presence/hours snapshot for a day.
	GetDailySummary(ctx context.Context, req SummaryRequest) (DailySummary, error)

	// GetMonthlyReport groups a calendar month by employee.
	GetMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
}
