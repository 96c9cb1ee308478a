package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// uniqueViolation is the postgres error code for duplicate-key inserts;
// a second first-check-in racing on (employee_id, date) lands here.
const uniqueViolation = "23505"

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	sessions, err := json.Marshal(day.Sessions)
	if err != nil {
		return attendance.AttendanceDay{}, fmt.Errorf("marshal sessions: %w", err)
	}

	query := `
		INSERT INTO attendance_days (
			id, employee_id, date, sessions, total_worked_hours, total_break_hours, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, 1
		) RETURNING id, version, created_at, updated_at
	`

	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	err = q.QueryRow(ctx, query,
		day.ID,
		day.EmployeeID,
		day.Date,
		sessions,
		day.TotalWorkedHours,
		day.TotalBreakHours,
	).Scan(&day.ID, &day.Version, &day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.AttendanceDay{}, attendance.ErrVersionConflict
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to create attendance day: %w", err)
	}

	return day, nil
}

// Update implements attendance.AttendanceRepository: a conditional write
// against the version the caller read. No matching row means another writer
// got there first.
func (a *attendanceRepository) Update(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	sessions, err := json.Marshal(day.Sessions)
	if err != nil {
		return attendance.AttendanceDay{}, fmt.Errorf("marshal sessions: %w", err)
	}

	query := `
		UPDATE attendance_days
		SET sessions = $1,
		    total_worked_hours = $2,
		    total_break_hours = $3,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $4 AND version = $5
		RETURNING version, updated_at
	`

	err = q.QueryRow(ctx, query,
		sessions,
		day.TotalWorkedHours,
		day.TotalBreakHours,
		day.ID,
		day.Version,
	).Scan(&day.Version, &day.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceDay{}, attendance.ErrVersionConflict
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to update attendance day: %w", err)
	}

	return day, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, date, sessions, total_worked_hours, total_break_hours,
		       version, created_at, updated_at
		FROM attendance_days
		WHERE employee_id = $1 AND date = $2
	`

	day, err := scanDay(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceDay{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to get attendance day: %w", err)
	}

	return day, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.sessions, a.total_worked_hours, a.total_break_hours,
		       a.version, a.created_at, a.updated_at,
		       e.name AS employee_name,
		       e.department AS employee_department
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1
		ORDER BY e.name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return collectDays(rows, true)
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.sessions, a.total_worked_hours, a.total_break_hours,
		       a.version, a.created_at, a.updated_at,
		       e.name AS employee_name,
		       e.department AS employee_department
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date >= $2
		  AND a.date <= $3
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	return collectDays(rows, true)
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.sessions, a.total_worked_hours, a.total_break_hours,
		       a.version, a.created_at, a.updated_at,
		       e.name AS employee_name,
		       e.department AS employee_department
		FROM attendance_days a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date < $2
		ORDER BY a.date DESC, e.name ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	return collectDays(rows, true)
}

func scanDay(row pgx.Row) (attendance.AttendanceDay, error) {
	var day attendance.AttendanceDay
	var sessions []byte
	err := row.Scan(
		&day.ID, &day.EmployeeID, &day.Date, &sessions,
		&day.TotalWorkedHours, &day.TotalBreakHours,
		&day.Version, &day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceDay{}, err
	}
	if err := json.Unmarshal(sessions, &day.Sessions); err != nil {
		return attendance.AttendanceDay{}, fmt.Errorf("unmarshal sessions: %w", err)
	}
	return day, nil
}

func collectDays(rows pgx.Rows, withEmployee bool) ([]attendance.AttendanceDay, error) {
	var days []attendance.AttendanceDay
	for rows.Next() {
		var day attendance.AttendanceDay
		var sessions []byte

		dest := []any{
			&day.ID, &day.EmployeeID, &day.Date, &sessions,
			&day.TotalWorkedHours, &day.TotalBreakHours,
			&day.Version, &day.CreatedAt, &day.UpdatedAt,
		}
		if withEmployee {
			dest = append(dest, &day.EmployeeName, &day.EmployeeDepartment)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		if err := json.Unmarshal(sessions, &day.Sessions); err != nil {
			return nil, fmt.Errorf("unmarshal sessions: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
