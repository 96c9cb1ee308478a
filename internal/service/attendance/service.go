package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/civilday"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/sse"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/validator"
)

// maxWriteAttempts bounds the re-read/re-apply loop on version conflicts.
// Each retry re-validates against fresh state, so the loser of a race gets
// the proper state error instead of a spurious conflict.
const maxWriteAttempts = 3

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	resolver       *civilday.Resolver
	hub            *sse.Hub
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *civilday.Resolver,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		hub:            hub,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	now := time.Now().UTC()

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, err := s.mutateDay(ctx, req.EmployeeID, now, initOnMissing, func(d *attendance.AttendanceDay) error {
		return d.StartSession(now)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.markPresence(ctx, req.EmployeeID, employee.PresenceOnline)
	if err := s.employeeRepo.SetLoggedIn(ctx, req.EmployeeID, true, now); err != nil {
		slog.Warn("Failed to flag employee as logged in", "employee_id", req.EmployeeID, "error", err)
	}

	return attendance.NewAttendanceResponse(day), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	now := time.Now().UTC()

	day, err := s.mutateDay(ctx, req.EmployeeID, now, requireRecord, func(d *attendance.AttendanceDay) error {
		return d.CloseSession(now)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.markPresence(ctx, req.EmployeeID, employee.PresenceOffline)
	if err := s.employeeRepo.SetLoggedIn(ctx, req.EmployeeID, false, now); err != nil {
		slog.Warn("Failed to flag employee as logged out", "employee_id", req.EmployeeID, "error", err)
	}

	return attendance.NewAttendanceResponse(day), nil
}

// StartBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakMarkResponse{}, err
	}
	now := time.Now().UTC()

	_, err := s.mutateDay(ctx, req.EmployeeID, now, requireRecord, func(d *attendance.AttendanceDay) error {
		return d.StartBreak(now)
	})
	if err != nil {
		return attendance.BreakMarkResponse{}, err
	}

	s.markPresence(ctx, req.EmployeeID, employee.PresenceOnBreak)

	return attendance.BreakMarkResponse{EmployeeID: req.EmployeeID, At: now}, nil
}

// EndBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.BreakRequest) (attendance.BreakMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakMarkResponse{}, err
	}
	now := time.Now().UTC()

	_, err := s.mutateDay(ctx, req.EmployeeID, now, requireRecord, func(d *attendance.AttendanceDay) error {
		return d.EndBreak(now)
	})
	if err != nil {
		return attendance.BreakMarkResponse{}, err
	}

	s.markPresence(ctx, req.EmployeeID, employee.PresenceOnline)

	return attendance.BreakMarkResponse{EmployeeID: req.EmployeeID, At: now}, nil
}

// GetByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByDate(ctx context.Context, req attendance.GetByDateRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	parsed, _ := validator.IsValidDate(req.Date)
	date := s.resolver.StartOfDay(parsed)

	day, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoAttendanceRecord
		}
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(day), nil
}

// ForceCloseOpenSession implements attendance.AttendanceService. It is the
// reconciler entry point: safe to call for employees with no record or an
// already-closed day, and safe to call twice.
func (s *AttendanceServiceImpl) ForceCloseOpenSession(ctx context.Context, employeeID string, now time.Time) error {
	date := s.resolver.StartOfDay(now)

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		day, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return nil
			}
			return err
		}

		if !day.ForceClose(now) {
			return nil
		}

		if _, err := s.attendanceRepo.Update(ctx, day); err != nil {
			if errors.Is(err, attendance.ErrVersionConflict) {
				continue
			}
			return err
		}

		s.markPresence(ctx, employeeID, employee.PresenceOffline)
		if err := s.employeeRepo.SetLoggedIn(ctx, employeeID, false, now); err != nil {
			slog.Warn("Failed to flag employee as logged out", "employee_id", employeeID, "error", err)
		}
		if s.hub != nil {
			// Tell the employee's own tabs they were logged out.
			s.hub.Publish(employeeID, sse.Event{
				UserID: employeeID,
				Event:  "forceLogout",
				Data:   map[string]string{"employeeId": employeeID},
			})
		}
		slog.Info("Force-closed open attendance session", "employee_id", employeeID, "at", now)
		return nil
	}

	return attendance.ErrVersionConflict
}

// Missing-record policy for mutateDay. Only check-in may bring a day
// document into existence; every other mutation needs one already there.
const (
	requireRecord = false
	initOnMissing = true
)

// mutateDay loads the employee's document for now's civil day, applies the
// mutation, and writes it back conditionally. A version conflict re-reads
// and re-applies, so state validation always runs against what actually got
// stored. With initOnMissing a missing document starts out empty; with
// requireRecord it is ErrNoAttendanceRecord.
func (s *AttendanceServiceImpl) mutateDay(
	ctx context.Context,
	employeeID string,
	now time.Time,
	initMissing bool,
	mutate func(*attendance.AttendanceDay) error,
) (attendance.AttendanceDay, error) {
	date := s.resolver.StartOfDay(now)

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		day, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
		create := false
		if err != nil {
			if !errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.AttendanceDay{}, err
			}
			if !initMissing {
				return attendance.AttendanceDay{}, attendance.ErrNoAttendanceRecord
			}
			create = true
			day = attendance.AttendanceDay{EmployeeID: employeeID, Date: date}
		}

		if err := mutate(&day); err != nil {
			return attendance.AttendanceDay{}, err
		}

		var saved attendance.AttendanceDay
		if create {
			saved, err = s.attendanceRepo.Create(ctx, day)
		} else {
			saved, err = s.attendanceRepo.Update(ctx, day)
		}
		if err != nil {
			if errors.Is(err, attendance.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return attendance.AttendanceDay{}, err
		}
		return saved, nil
	}

	return attendance.AttendanceDay{}, fmt.Errorf("attendance write did not converge: %w", lastErr)
}

// markPresence updates the advisory live status and broadcasts the change
// to every open stream, so dashboards see all transitions. Best-effort: a
// failure is logged and never unwinds the ledger write that triggered it.
func (s *AttendanceServiceImpl) markPresence(ctx context.Context, employeeID string, presence employee.Presence) {
	if err := s.employeeRepo.SetPresence(ctx, employeeID, presence); err != nil {
		slog.Warn("Failed to update presence", "employee_id", employeeID, "presence", presence, "error", err)
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(sse.Event{
			UserID: employeeID,
			Event:  "presence",
			Data:   map[string]string{"employeeId": employeeID, "presence": string(presence)},
		})
	}
}
