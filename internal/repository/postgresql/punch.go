package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/google/uuid"
)

type punchRepository struct {
	db *database.DB
}

// NewPunchRepository creates a new punch repository
func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}

// Create appends a punch. Punches are immutable; there is no update path.
func (r *punchRepository) Create(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	if punch.ID == "" {
		punch.ID = uuid.New().String()
	}

	query := `
		INSERT INTO punches (id, employee_id, company_id, date, type, timestamp, location, device_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		punch.ID,
		punch.EmployeeID,
		punch.CompanyID,
		punch.Date,
		string(punch.Type),
		punch.Timestamp,
		punch.Location,
		punch.DeviceID,
	).Scan(&punch.CreatedAt)
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return punch, nil
}

// ListByEmployeeAndDate returns the day's punches in insertion order.
func (r *punchRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, type, timestamp, location, device_id, created_at
		FROM punches
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeID, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		var punch attendance.Punch
		var punchType string
		err := rows.Scan(
			&punch.ID,
			&punch.EmployeeID,
			&punch.CompanyID,
			&punch.Date,
			&punchType,
			&punch.Timestamp,
			&punch.Location,
			&punch.DeviceID,
			&punch.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punch.Type = attendance.PunchType(punchType)
		punches = append(punches, punch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, nil
}
