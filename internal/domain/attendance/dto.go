package attendance

import (
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest = CheckInRequest

type BreakRequest = CheckInRequest

type GetByDateRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
}

func (r *GetByDateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
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

type AllByDateRequest struct {
	Date string `json:"date"`
	Role string `json:"role"`
}

func (r *AllByDateRequest) Validate() error {
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

type HistoryRequest struct {
	EmployeeID string  `json:"employeeId"`
	StartDate  *string `json:"startDate,omitempty"`
	EndDate    *string `json:"endDate,omitempty"`
}

func (r *HistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
	for field, v := range map[string]*string{"startDate": r.StartDate, "endDate": r.EndDate} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceResponse mirrors the stored document with derived totals always
// present.
type AttendanceResponse struct {
	ID                 string            `json:"id"`
	EmployeeID         string            `json:"employeeId"`
	EmployeeName       *string           `json:"employeeName,omitempty"`
	EmployeeDepartment *string           `json:"employeeDepartment,omitempty"`
	Date               string            `json:"date"`
	Sessions           []SessionResponse `json:"sessions"`
	TotalWorkedHours   float64           `json:"totalWorkedHours"`
	TotalBreakHours    float64           `json:"totalBreakHours"`
}

type SessionResponse struct {
	CheckIn         time.Time       `json:"checkIn"`
	CheckOut        *time.Time      `json:"checkOut,omitempty"`
	WorkedHours     float64         `json:"workedHours"`
	Breaks          []BreakInterval `json:"breaks"`
	TotalBreakHours float64         `json:"totalBreakHours"`
}

type BreakMarkResponse struct {
	EmployeeID string    `json:"employeeId"`
	At         time.Time `json:"at"`
}

// NewAttendanceResponse maps a ledger document to its wire shape.
func NewAttendanceResponse(d AttendanceDay) AttendanceResponse {
	sessions := make([]SessionResponse, 0, len(d.Sessions))
	for _, s := range d.Sessions {
		breaks := s.Breaks
		if breaks == nil {
			breaks = []BreakInterval{}
		}
		sessions = append(sessions, SessionResponse{
			CheckIn:         s.CheckIn,
			CheckOut:        s.CheckOut,
			WorkedHours:     s.WorkedHours,
			Breaks:          breaks,
			TotalBreakHours: s.TotalBreakHours,
		})
	}
	return AttendanceResponse{
		ID:                 d.ID,
		EmployeeID:         d.EmployeeID,
		EmployeeName:       d.EmployeeName,
		EmployeeDepartment: d.EmployeeDepartment,
		Date:               d.Date.Format("2006-01-02"),
		Sessions:           sessions,
		TotalWorkedHours:   d.TotalWorkedHours,
		TotalBreakHours:    d.TotalBreakHours,
	}
}
