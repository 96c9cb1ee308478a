package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) employee.ShiftRepository {
	return &shiftRepository{db: db}
}

// GetByID implements employee.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (employee.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, start_time, end_time, total_hours, hourly_rate,
		       is_active, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	var s employee.Shift
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Code, &s.StartTime, &s.EndTime, &s.TotalHours,
		&s.HourlyRate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Shift{}, employee.ErrShiftNotFound
		}
		return employee.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}
