package lateness

import (
	"context"
	"time"
)

// ApplicationRepository stores exception applications.
// Uniqueness on attendance_id is enforced by the store as well as the
// service; a violation surfaces as ErrDuplicateApplication.
type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string, companyID string) (Application, error)
	GetByAttendanceID(ctx context.Context, attendanceID string, companyID string) (*Application, error)
	Update(ctx context.Context, app Application) error
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]Application, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Application, error)
}

// LedgerRepository stores the recomputed monthly projection.
type LedgerRepository interface {
	// ReplaceMonth atomically swaps the month's entries for an employee,
	// serialized against concurrent recomputations of the same
	// employee-month via an advisory lock.
	ReplaceMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string, entries []LedgerEntry) error

	ListMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]LedgerEntry, error)
}

// SettingsRepository reads and writes the company settings singleton.
type SettingsRepository interface {
	GetByCompany(ctx context.Context, companyID string) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
}
