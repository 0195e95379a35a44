package schedule

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// GetByEmployeeAndDate returns the shift in effect for the employee on
	// the given date. ErrShiftNotFound when none is configured; the caller
	// classifies the day as unclassified rather than defaulting to on-time.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (WorkShift, error)
}
