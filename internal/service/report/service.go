package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/report"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// defaultHistoryDays is the trailing window applied when a history request
// carries no explicit range.
const defaultHistoryDays = 90

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      employee.ShiftRepository
	resolver       *civilday.Resolver
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo employee.ShiftRepository,
	resolver *civilday.Resolver,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		shiftRepo:      shiftRepo,
		resolver:       resolver,
	}
}

// GetAllByDate implements report.ReportService.
func (s *ReportServiceImpl) GetAllByDate(ctx context.Context, req attendance.AllByDateRequest) (report.AllByDateResponse, error) {
	if err := req.Validate(); err != nil {
		return report.AllByDateResponse{}, err
	}

	parsed, _ := validator.IsValidDate(req.Date)
	date := s.resolver.StartOfDay(parsed)

	days, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return report.AllByDateResponse{}, fmt.Errorf("failed to list attendance by date: %w", err)
	}

	return report.AllByDateResponse{
		Attendance: toResponses(days),
		Message:    "Attendance records fetched successfully",
	}, nil
}

// GetEmployeeHistory implements report.ReportService.
func (s *ReportServiceImpl) GetEmployeeHistory(ctx context.Context, req attendance.HistoryRequest) (report.HistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.HistoryResponse{}, err
	}

	end := s.resolver.Today()
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := validator.IsValidDate(*req.EndDate)
		end = s.resolver.StartOfDay(parsed)
	}
	start := end.AddDate(0, 0, -defaultHistoryDays)
	if req.StartDate != nil && *req.StartDate != "" {
		parsed, _ := validator.IsValidDate(*req.StartDate)
		start = s.resolver.StartOfDay(parsed)
	}

	days, err := s.attendanceRepo.ListByEmployeeRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return report.HistoryResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	return report.HistoryResponse{Attendance: toResponses(days)}, nil
}

// GetDailySummary implements report.ReportService.
func (s *ReportServiceImpl) GetDailySummary(ctx context.Context, req report.SummaryRequest) (report.DailySummary, error) {
	if err := req.Validate(); err != nil {
		return report.DailySummary{}, err
	}

	parsed, _ := validator.IsValidDate(req.Date)
	date := s.resolver.StartOfDay(parsed)

	var (
		total int
		days  []attendance.AttendanceDay
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.employeeRepo.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = s.attendanceRepo.ListByDate(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.DailySummary{}, fmt.Errorf("failed to load daily summary inputs: %w", err)
	}

	summary := report.DailySummary{
		TotalEmployees:   total,
		PresentEmployees: len(days),
	}

	var worked, breaks float64
	for i := range days {
		days[i].RecomputeTotals()
		worked += days[i].TotalWorkedHours
		breaks += days[i].TotalBreakHours
		// An employee on break is still clocked in, so the counts overlap.
		if days[i].HasOpenSession() {
			summary.ActiveEmployees++
		}
		if days[i].HasOpenBreak() {
			summary.OnBreakEmployees++
		}
	}

	if absent := total - summary.PresentEmployees; absent > 0 {
		summary.AbsentEmployees = absent
	}
	summary.TotalWorkedHours = round2(worked)
	summary.TotalBreakHours = round2(breaks)
	if summary.PresentEmployees > 0 {
		summary.AverageWorkedHours = round2(worked / float64(summary.PresentEmployees))
	}

	return summary, nil
}

// GetMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GetMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	start, end := s.resolver.MonthRange(req.Year, time.Month(req.Month))

	days, err := s.attendanceRepo.ListByRange(ctx, start, end)
	if err != nil {
		return report.MonthlyReportResponse{}, fmt.Errorf("failed to list attendance for month: %w", err)
	}

	byEmployee := make(map[string]*report.MonthlyEmployeeReport)
	for i := range days {
		days[i].RecomputeTotals()

		entry, ok := byEmployee[days[i].EmployeeID]
		if !ok {
			name := days[i].EmployeeID
			if days[i].EmployeeName != nil {
				name = *days[i].EmployeeName
			}
			entry = &report.MonthlyEmployeeReport{
				EmployeeID:   days[i].EmployeeID,
				EmployeeName: name,
			}
			byEmployee[days[i].EmployeeID] = entry
		}

		entry.TotalWorkingDays++
		entry.TotalHoursWorked += days[i].TotalWorkedHours
		entry.TotalBreakHours += days[i].TotalBreakHours
	}

	rollup := make([]report.MonthlyEmployeeReport, 0, len(byEmployee))
	for _, entry := range byEmployee {
		entry.TotalHoursWorked = round2(entry.TotalHoursWorked)
		entry.TotalBreakHours = round2(entry.TotalBreakHours)
		if entry.TotalWorkingDays > 0 {
			entry.AverageHoursPerDay = round2(entry.TotalHoursWorked / float64(entry.TotalWorkingDays))
		}
		entry.TotalPay = s.monthlyPay(ctx, entry.EmployeeID, entry.TotalHoursWorked)
		rollup = append(rollup, *entry)
	}
	sort.Slice(rollup, func(i, j int) bool { return rollup[i].EmployeeName < rollup[j].EmployeeName })

	return report.MonthlyReportResponse{
		Message: "Monthly report generated successfully",
		Report:  rollup,
	}, nil
}

// monthlyPay prices worked hours at the employee's shift hourly rate. An
// employee without a shift, or a lookup failure, yields zero pay rather than
// failing the whole report.
func (s *ReportServiceImpl) monthlyPay(ctx context.Context, employeeID string, hours float64) decimal.Decimal {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil || emp.ShiftID == nil {
		return decimal.Zero
	}
	shift, err := s.shiftRepo.GetByID(ctx, *emp.ShiftID)
	if err != nil {
		slog.Warn("Failed to resolve shift for pay rollup", "employee_id", employeeID, "error", err)
		return decimal.Zero
	}
	return shift.HourlyRate.Mul(decimal.NewFromFloat(hours)).Round(2)
}

func toResponses(days []attendance.AttendanceDay) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(days))
	for i := range days {
		days[i].RecomputeTotals()
		out = append(out, attendance.NewAttendanceResponse(days[i]))
	}
	return out
}

// round2 rounds half-up to two decimal places without float drift.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
