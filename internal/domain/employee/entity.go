package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee carries only what the policy engine needs from the HR system:
// identity, the daily rate used for salary deductions, and the leave
// balances the Leave preference can draw on.
type Employee struct {
	ID        string
	CompanyID string
	FullName  string
	ManagerID *string // reporting chain, consulted by the approval workflow
	DailyRate decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveBalance is the per-employee balance snapshot. Only the earned
// bucket is debited by late deductions.
type LeaveBalance struct {
	EmployeeID string
	Casual     float64
	Sick       float64
	Earned     float64
	UpdatedAt  time.Time
}
