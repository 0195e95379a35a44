package lateness

import (
	"context"
	"time"
)

// LatenessService is the monthly ledger and approval workflow surface.
type LatenessService interface {
	// Apply creates an exception application for a late attendance record.
	// Applications under the auto-approve threshold are created already
	// approved.
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)

	Approve(ctx context.Context, req ApproveRequest) (ApplicationResponse, error)
	Reject(ctx context.Context, req RejectRequest) (ApplicationResponse, error)
	GetMyApplications(ctx context.Context) ([]ApplicationResponse, error)

	// MonthlyReport returns the recomputed aggregate for an employee-month.
	MonthlyReport(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyReportResponse, error)

	// RecomputeMonth rebuilds the ledger projection for one employee-month
	// from its attendance records and applications. Idempotent.
	RecomputeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) error

	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
