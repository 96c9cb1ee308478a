package report

import (
	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SummaryRequest selects the civil day for a daily snapshot.
type SummaryRequest struct {
	Date string `json:"date"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DailySummary is the per-date snapshot: presence counts and hour totals,
// all hour figures rounded to 2 decimal places.
type DailySummary struct {
	TotalEmployees     int     `json:"totalEmployees"`
	PresentEmployees   int     `json:"presentEmployees"`
	AbsentEmployees    int     `json:"absentEmployees"`
	ActiveEmployees    int     `json:"activeEmployees"`
	OnBreakEmployees   int     `json:"onBreakEmployees"`
	TotalWorkedHours   float64 `json:"totalWorkedHours"`
	TotalBreakHours    float64 `json:"totalBreakHours"`
	AverageWorkedHours float64 `json:"averageWorkedHours"`
}

// MonthlyReportRequest selects a calendar month.
type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyEmployeeReport is one employee's rollup for a calendar month.
// TotalPay is worked hours priced at the employee's shift hourly rate, zero
// when no shift is assigned.
type MonthlyEmployeeReport struct {
	EmployeeID         string          `json:"employeeId"`
	EmployeeName       string          `json:"employeeName"`
	TotalWorkingDays   int             `json:"totalWorkingDays"`
	TotalHoursWorked   float64         `json:"totalHoursWorked"`
	TotalBreakHours    float64         `json:"totalBreakHours"`
	AverageHoursPerDay float64         `json:"averageHoursPerDay"`
	TotalPay           decimal.Decimal `json:"totalPay"`
}

type MonthlyReportResponse struct {
	Message string                  `json:"message"`
	Report  []MonthlyEmployeeReport `json:"report"`
}

// HistoryResponse is a ranged per-employee record list with derived totals
// guaranteed present.
type HistoryResponse struct {
	Attendance []attendance.AttendanceResponse `json:"attendance"`
}

// AllByDateResponse lists every employee's record for one civil day.
type AllByDateResponse struct {
	Attendance []attendance.AttendanceResponse `json:"attendance"`
	Message    string                          `json:"message"`
}
