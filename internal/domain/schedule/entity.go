package schedule

import "time"

// WorkShift is the per-employee shift configuration supplied by the
// external scheduling system. ClockIn/ClockOut carry only the time-of-day
// component; the date parts are ignored.
type WorkShift struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
