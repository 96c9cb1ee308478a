package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/attendance"
	"github.com/EethalTeam/enis-hrm-go/internal/domain/dashboard"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// ListLateCandidates implements dashboard.DashboardRepository. One candidate
// per attendance row: active employees with an assigned shift, keyed on the
// day's first check-in. Later sessions are re-entries after a checkout, not
// logins, so they never count toward lateness. Permission windows are merged
// in by the service.
func (r *dashboardRepository) ListLateCandidates(ctx context.Context, date time.Time) ([]dashboard.LateCandidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.sessions, e.id, e.name, s.start_time
		FROM attendance_days a
		JOIN employees e ON e.id = a.employee_id
		JOIN shifts s ON s.id = e.shift_id
		WHERE a.date = $1 AND e.is_active = TRUE
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list late candidates: %w", err)
	}
	defer rows.Close()

	var candidates []dashboard.LateCandidate
	for rows.Next() {
		var (
			rawSessions []byte
			employeeID  string
			name        string
			shiftStart  string
		)
		if err := rows.Scan(&rawSessions, &employeeID, &name, &shiftStart); err != nil {
			return nil, fmt.Errorf("failed to scan late candidate: %w", err)
		}

		var sessions []attendance.Session
		if err := json.Unmarshal(rawSessions, &sessions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
		}

		checkIn, ok := firstCheckIn(sessions)
		if !ok {
			continue
		}
		candidates = append(candidates, dashboard.LateCandidate{
			EmployeeID:     employeeID,
			EmployeeName:   name,
			CheckIn:        checkIn,
			ShiftStartTime: shiftStart,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate late candidates: %w", err)
	}

	return candidates, nil
}

// firstCheckIn returns the day's initial login. Sessions are stored in
// check-in order, so the first one with a recorded check-in is the login
// that lateness is judged on.
func firstCheckIn(sessions []attendance.Session) (time.Time, bool) {
	for _, s := range sessions {
		if !s.CheckIn.IsZero() {
			return s.CheckIn, true
		}
	}
	return time.Time{}, false
}
