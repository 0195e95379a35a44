package lateness

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionPreference is the org-wide policy for where a lateness penalty
// comes from once grace days are exhausted.
type DeductionPreference string

const (
	PreferLeave  DeductionPreference = "leave"  // earned leave first, salary fallback
	PreferSalary DeductionPreference = "salary" // always salary
	PreferManual DeductionPreference = "manual" // an administrator decides
)

// Settings is the company-scoped lateness configuration singleton. Read on
// every ledger recomputation, so reads go through a cache.
type Settings struct {
	ID                      string
	CompanyID               string
	IsEnabled               bool
	DeductionPreference     DeductionPreference
	GraceDaysPerMonth       int
	LateThresholdMinutes    int
	AutoApproveUnderMinutes int
	UpdatedAt               time.Time
}

// DefaultSettings is the fallback for a company that never configured the
// policy: timing is still classified (any minute past shift start is late)
// but the deduction machinery stays off until an administrator opts in.
func DefaultSettings(companyID string) Settings {
	return Settings{
		CompanyID:               companyID,
		IsEnabled:               false,
		DeductionPreference:     PreferManual,
		GraceDaysPerMonth:       0,
		LateThresholdMinutes:    1,
		AutoApproveUnderMinutes: 0,
	}
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is an exception request for a specific late attendance record.
// At most one per record; transitions are one-way terminal.
type Application struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	AttendanceID    string
	Reason          string
	Status          ApplicationStatus
	AutoApproved    bool
	RejectionReason *string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type DeductionType string

const (
	DeductionNone   DeductionType = "none"
	DeductionSalary DeductionType = "salary"
	DeductionLeave  DeductionType = "leave"
	DeductionManual DeductionType = "manual" // held for manual decision
)

// LedgerEntry is one late day's position and consequence within an
// employee-month. Entries are replaced wholesale on every recomputation;
// they are a projection of the month's records and applications, not a
// counter.
type LedgerEntry struct {
	ID           string
	CompanyID    string
	EmployeeID   string
	AttendanceID string
	Date         time.Time
	Ordinal      int // 1-based position among the month's late days
	LateMinutes  int

	UsedGrace         bool
	ApprovedExemption bool
	Incomplete        bool // no clock-out; never deductible

	DeductionType DeductionType
	SalaryAmount  decimal.Decimal // one day's pro-rated salary when DeductionType is salary
	LeaveDays     float64         // earned-leave days when DeductionType is leave
	Deducted      bool

	ComputedAt time.Time
}

// MonthlyReport is the per-month aggregate exposed to payroll and reporting.
type MonthlyReport struct {
	EmployeeID           string
	Year                 int
	Month                time.Month
	TotalLates           int
	ApprovedLates        int
	DeductibleLates      int
	TotalSalaryDeduction decimal.Decimal
	TotalLeaveDeduction  float64
	Entries              []LedgerEntry
}
