package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/permission"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
)

type permissionRepository struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) permission.WindowRepository {
	return &permissionRepository{db: db}
}

// ListApprovedByDate implements permission.WindowRepository.
func (r *permissionRepository) ListApprovedByDate(ctx context.Context, date time.Time) (map[string][]permission.Window, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, from_time, to_time, total_hours, reason
		FROM permission_requests
		WHERE date = $1 AND status = 'Approved'
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list permission windows: %w", err)
	}
	defer rows.Close()

	windows := make(map[string][]permission.Window)
	for rows.Next() {
		var w permission.Window
		err := rows.Scan(&w.ID, &w.EmployeeID, &w.Date, &w.FromTime, &w.ToTime, &w.TotalHours, &w.Reason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission window: %w", err)
		}
		windows[w.EmployeeID] = append(windows[w.EmployeeID], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate permission windows: %w", err)
	}

	return windows, nil
}
