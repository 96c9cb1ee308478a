package report

import (
	"context"
	"testing"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/report"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testResolver = civilday.MustResolver(civilday.DefaultTimezone)

// fakeLedger serves canned rows; reporting never writes.
type fakeLedger struct {
	attendance.AttendanceRepository
	days []attendance.AttendanceDay

	gotStart, gotEnd time.Time
}

func (f *fakeLedger) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceDay, error) {
	var out []attendance.AttendanceDay
	for _, d := range f.days {
		if d.Date.Equal(date) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceDay, error) {
	f.gotStart, f.gotEnd = start, end
	var out []attendance.AttendanceDay
	for _, d := range f.days {
		if d.EmployeeID == employeeID && !d.Date.Before(start) && !d.Date.After(end) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.AttendanceDay, error) {
	f.gotStart, f.gotEnd = start, end
	var out []attendance.AttendanceDay
	for _, d := range f.days {
		if !d.Date.Before(start) && d.Date.Before(end) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	employee.EmployeeRepository
	active    int
	employees map[string]employee.Employee
}

func (f *fakeDirectory) CountActive(ctx context.Context) (int, error) {
	return f.active, nil
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeShifts struct {
	shifts map[string]employee.Shift
}

func (f *fakeShifts) GetByID(ctx context.Context, id string) (employee.Shift, error) {
	shift, ok := f.shifts[id]
	if !ok {
		return employee.Shift{}, employee.ErrShiftNotFound
	}
	return shift, nil
}

// closedDay builds a closed single-session day with the given worked and
// break hours.
func closedDay(employeeID, name string, date time.Time, worked, breaks float64) attendance.AttendanceDay {
	checkIn := date.Add(4 * time.Hour)
	checkOut := checkIn.Add(time.Duration((worked + breaks) * float64(time.Hour)))
	session := attendance.Session{
		CheckIn:         checkIn,
		CheckOut:        &checkOut,
		WorkedHours:     worked,
		TotalBreakHours: breaks,
	}
	return attendance.AttendanceDay{
		EmployeeID:       employeeID,
		EmployeeName:     &name,
		Date:             date,
		Sessions:         []attendance.Session{session},
		TotalWorkedHours: worked,
		TotalBreakHours:  breaks,
	}
}

func openDay(employeeID string, date time.Time, onBreak bool) attendance.AttendanceDay {
	session := attendance.Session{CheckIn: date.Add(4 * time.Hour)}
	if onBreak {
		session.Breaks = []attendance.BreakInterval{{BreakStart: date.Add(6 * time.Hour)}}
	}
	return attendance.AttendanceDay{
		EmployeeID: employeeID,
		Date:       date,
		Sessions:   []attendance.Session{session},
	}
}

func TestGetDailySummary(t *testing.T) {
	t.Parallel()
	date := testResolver.StartOfDay(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	ledger := &fakeLedger{days: []attendance.AttendanceDay{
		closedDay("e1", "Asha", date, 8, 0.5),
		openDay("e2", date, false),
		openDay("e3", date, true),
	}}
	dir := &fakeDirectory{active: 10}

	svc := NewReportService(ledger, dir, &fakeShifts{}, testResolver)
	summary, err := svc.GetDailySummary(context.Background(), report.SummaryRequest{Date: "2026-05-01"})
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalEmployees)
	assert.Equal(t, 3, summary.PresentEmployees)
	assert.Equal(t, 7, summary.AbsentEmployees)
	// The employee on break is still clocked in and counts in both.
	assert.Equal(t, 2, summary.ActiveEmployees)
	assert.Equal(t, 1, summary.OnBreakEmployees)
	assert.InDelta(t, 8.0, summary.TotalWorkedHours, 1e-9)
	assert.InDelta(t, 0.5, summary.TotalBreakHours, 1e-9)
	assert.InDelta(t, 2.67, summary.AverageWorkedHours, 1e-9)
}

func TestGetDailySummary_InvalidDate(t *testing.T) {
	t.Parallel()
	svc := NewReportService(&fakeLedger{}, &fakeDirectory{}, &fakeShifts{}, testResolver)

	_, err := svc.GetDailySummary(context.Background(), report.SummaryRequest{Date: "01-05-2026"})
	assert.Error(t, err)
}

func TestGetMonthlyReport_GroupsAndPrices(t *testing.T) {
	t.Parallel()
	d1 := testResolver.StartOfDay(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	d2 := testResolver.StartOfDay(time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC))

	shiftID := "s1"
	ledger := &fakeLedger{days: []attendance.AttendanceDay{
		closedDay("e1", "Asha", d1, 8, 0),
		closedDay("e1", "Asha", d2, 6, 0),
		closedDay("e2", "Binu", d1, 7.5, 0.5),
	}}
	dir := &fakeDirectory{employees: map[string]employee.Employee{
		"e1": {ID: "e1", ShiftID: &shiftID},
		"e2": {ID: "e2"}, // no shift assigned
	}}
	shifts := &fakeShifts{shifts: map[string]employee.Shift{
		"s1": {ID: "s1", HourlyRate: decimal.NewFromInt(200)},
	}}

	svc := NewReportService(ledger, dir, shifts, testResolver)
	resp, err := svc.GetMonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2026, Month: 5})
	require.NoError(t, err)
	require.Len(t, resp.Report, 2)

	asha := resp.Report[0]
	assert.Equal(t, "Asha", asha.EmployeeName)
	assert.Equal(t, 2, asha.TotalWorkingDays)
	assert.InDelta(t, 14.0, asha.TotalHoursWorked, 1e-9)
	assert.InDelta(t, 7.0, asha.AverageHoursPerDay, 1e-9)
	assert.True(t, asha.TotalPay.Equal(decimal.NewFromInt(2800)), "got %s", asha.TotalPay)

	binu := resp.Report[1]
	assert.Equal(t, "Binu", binu.EmployeeName)
	assert.True(t, binu.TotalPay.IsZero())
}

func TestGetMonthlyReport_InvalidMonth(t *testing.T) {
	t.Parallel()
	svc := NewReportService(&fakeLedger{}, &fakeDirectory{}, &fakeShifts{}, testResolver)

	_, err := svc.GetMonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2026, Month: 13})
	assert.Error(t, err)
}

func TestGetEmployeeHistory_DefaultsToTrailingWindow(t *testing.T) {
	t.Parallel()
	ledger := &fakeLedger{}
	svc := NewReportService(ledger, &fakeDirectory{}, &fakeShifts{}, testResolver)

	_, err := svc.GetEmployeeHistory(context.Background(), attendance.HistoryRequest{EmployeeID: "e1"})
	require.NoError(t, err)

	assert.Equal(t, testResolver.Today(), ledger.gotEnd)
	assert.Equal(t, ledger.gotEnd.AddDate(0, 0, -90), ledger.gotStart)
}

func TestGetEmployeeHistory_ExplicitRange(t *testing.T) {
	t.Parallel()
	d := testResolver.StartOfDay(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	ledger := &fakeLedger{days: []attendance.AttendanceDay{closedDay("e1", "Asha", d, 8, 0)}}
	svc := NewReportService(ledger, &fakeDirectory{}, &fakeShifts{}, testResolver)

	start, end := "2026-05-01", "2026-05-31"
	resp, err := svc.GetEmployeeHistory(context.Background(), attendance.HistoryRequest{
		EmployeeID: "e1",
		StartDate:  &start,
		EndDate:    &end,
	})
	require.NoError(t, err)
	require.Len(t, resp.Attendance, 1)
	assert.Equal(t, "2026-05-04", resp.Attendance[0].Date)
}

func TestGetAllByDate(t *testing.T) {
	t.Parallel()
	date := testResolver.StartOfDay(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	ledger := &fakeLedger{days: []attendance.AttendanceDay{closedDay("e1", "Asha", date, 8, 0)}}
	svc := NewReportService(ledger, &fakeDirectory{}, &fakeShifts{}, testResolver)

	resp, err := svc.GetAllByDate(context.Background(), attendance.AllByDateRequest{Date: "2026-05-01"})
	require.NoError(t, err)
	require.Len(t, resp.Attendance, 1)
	assert.Equal(t, "e1", resp.Attendance[0].EmployeeID)
}
