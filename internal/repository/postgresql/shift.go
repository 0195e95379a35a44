package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepository{db: db}
}

// GetByEmployeeAndDate returns the shift effective on the given date. Shifts
// carry an effective range so historical days classify against the shift
// that applied back then.
func (r *shiftRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, clock_in, clock_out, created_at, updated_at
		FROM work_shifts
		WHERE employee_id = $1
			AND company_id = $2
			AND effective_from <= $3
			AND (effective_until IS NULL OR effective_until >= $3)
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var shift schedule.WorkShift
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&shift.ID,
		&shift.CompanyID,
		&shift.EmployeeID,
		&shift.ClockIn,
		&shift.ClockOut,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkShift{}, schedule.ErrShiftNotFound
		}
		return schedule.WorkShift{}, fmt.Errorf("failed to get work shift: %w", err)
	}

	return shift, nil
}
