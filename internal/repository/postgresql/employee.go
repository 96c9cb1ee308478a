package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EethalTeam/enis-hrm-go/internal/domain/employee"
	"github.com/EethalTeam/enis-hrm-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, name, email, department, shift_id, presence, is_active,
	is_currently_logged_in, last_logged_in, created_at, updated_at
`

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.ShiftID, &emp.Presence,
		&emp.IsActive, &emp.IsCurrentlyLoggedIn, &emp.LastLoggedIn,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}

// ListCurrentlyLoggedIn implements employee.EmployeeRepository.
func (r *employeeRepository) ListCurrentlyLoggedIn(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_currently_logged_in = TRUE`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list logged-in employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Email, &emp.Department, &emp.ShiftID, &emp.Presence,
			&emp.IsActive, &emp.IsCurrentlyLoggedIn, &emp.LastLoggedIn,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// SetPresence implements employee.EmployeeRepository.
func (r *employeeRepository) SetPresence(ctx context.Context, id string, presence employee.Presence) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET presence = $1, updated_at = NOW() WHERE id = $2`,
		presence, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set presence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetLoggedIn implements employee.EmployeeRepository.
func (r *employeeRepository) SetLoggedIn(ctx context.Context, id string, loggedIn bool, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	var err error
	if loggedIn {
		_, err = q.Exec(ctx,
			`UPDATE employees SET is_currently_logged_in = TRUE, updated_at = NOW() WHERE id = $1`,
			id,
		)
	} else {
		_, err = q.Exec(ctx,
			`UPDATE employees SET is_currently_logged_in = FALSE, last_logged_in = $1, updated_at = NOW() WHERE id = $2`,
			at, id,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to set login flag: %w", err)
	}
	return nil
}
