package attendance

import (
	"context"
	"time"
)

// PunchRepository stores raw clock events. Punches are append-only.
type PunchRepository interface {
	Create(ctx context.Context, punch Punch) (Punch, error)

	// ListByEmployeeAndDate returns every punch for one employee-day,
	// in whatever order the store yields them. Ordering is the session
	// builder's job, not the repository's.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) ([]Punch, error)
}

// AttendanceRepository defines data access for classified records.
// All methods take companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// Upsert inserts or fully replaces the record for (employee, date).
	// Recomputation semantics: every derived field is overwritten.
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// ListLateByMonth returns the month's records with lateMinutes >= threshold,
	// sorted by date ascending. Input to the monthly late ledger.
	ListLateByMonth(ctx context.Context, employeeID string, year int, month time.Month, threshold int, companyID string) ([]Attendance, error)

	List(ctx context.Context, filter Filter, companyID string) ([]Attendance, int64, error)

	GetMyAttendance(ctx context.Context, employeeID string, filter MyFilter, companyID string) ([]Attendance, int64, error)

	// ListLateEmployeeMonths returns distinct (employeeID, year, month) pairs
	// that contain at least one late record. Used by the recompute cron.
	ListLateEmployeeMonths(ctx context.Context, year int, month time.Month, threshold int) ([]EmployeeMonth, error)
}

type EmployeeMonth struct {
	EmployeeID string
	CompanyID  string
	Year       int
	Month      time.Month
}
