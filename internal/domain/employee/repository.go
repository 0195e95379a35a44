package employee

import "context"

// EmployeeRepository reads employee master data owned by the external HR
// system. The policy engine never creates employees.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	GetLeaveBalance(ctx context.Context, employeeID string, companyID string) (LeaveBalance, error)

	// AdjustEarnedLeave applies a delta (positive or negative) to the
	// earned bucket. Ledger recomputation uses deltas so that running it
	// twice is a no-op.
	AdjustEarnedLeave(ctx context.Context, employeeID string, companyID string, delta float64) error
}
