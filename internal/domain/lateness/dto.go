package lateness

import (
	"strings"

	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/validator"
)

// MinReasonLength applies to both the application reason and the
// rejection reason.
const MinReasonLength = 10

// ========================================
// APPLICATION DTOs
// ========================================

type ApplyRequest struct {
	AttendanceID string `json:"attendance_id"`
	Reason       string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if len(strings.TrimSpace(r.Reason)) < MinReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at least 10 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequest struct {
	ID    string  `json:"-"`
	Notes *string `json:"notes,omitempty"`
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(strings.TrimSpace(r.Reason)) < MinReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason must be at least 10 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplicationResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	AttendanceID     string  `json:"attendance_id"`
	AttendanceDate   string  `json:"attendance_date,omitempty"`
	LateMinutes      int     `json:"late_minutes,omitempty"`
	MonthlyLateCount int     `json:"monthly_late_count,omitempty"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	AutoApproved     bool    `json:"auto_approved"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	DeductionType    string  `json:"deduction_type,omitempty"`
	DeductionAmount  string  `json:"deduction_amount,omitempty"`
	IsDeducted       bool    `json:"is_deducted"`
	CreatedAt        string  `json:"created_at"`
}

// ========================================
// LEDGER / REPORT DTOs
// ========================================

type LedgerEntryResponse struct {
	AttendanceID      string  `json:"attendance_id"`
	Date              string  `json:"date"`
	Ordinal           int     `json:"monthly_late_count"`
	LateMinutes       int     `json:"late_minutes"`
	UsedGrace         bool    `json:"used_grace"`
	ApprovedExemption bool    `json:"approved_exemption"`
	Incomplete        bool    `json:"incomplete"`
	DeductionType     string  `json:"deduction_type"`
	SalaryAmount      string  `json:"salary_amount"`
	LeaveDays         float64 `json:"leave_days"`
	IsDeducted        bool    `json:"is_deducted"`
}

type MonthlyReportResponse struct {
	EmployeeID           string                `json:"employee_id"`
	Year                 int                   `json:"year"`
	Month                int                   `json:"month"`
	TotalLates           int                   `json:"total_lates"`
	ApprovedLates        int                   `json:"approved_lates"`
	DeductibleLates      int                   `json:"deductible_lates"`
	TotalSalaryDeduction string                `json:"total_salary_deduction"`
	TotalLeaveDeduction  float64               `json:"total_leave_deduction"`
	Entries              []LedgerEntryResponse `json:"entries"`
}

// ========================================
// SETTINGS DTOs
// ========================================

type UpdateSettingsRequest struct {
	IsEnabled               *bool   `json:"is_enabled,omitempty"`
	DeductionPreference     *string `json:"deduction_preference,omitempty"`
	GraceDaysPerMonth       *int    `json:"grace_days_per_month,omitempty"`
	LateThresholdMinutes    *int    `json:"late_threshold_minutes,omitempty"`
	AutoApproveUnderMinutes *int    `json:"auto_approve_under_minutes,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DeductionPreference != nil {
		validPreferences := []string{"leave", "salary", "manual"}
		if !validator.IsInSlice(strings.ToLower(*r.DeductionPreference), validPreferences) {
			errs = append(errs, validator.ValidationError{
				Field:   "deduction_preference",
				Message: "deduction_preference must be one of: leave, salary, manual",
			})
		}
	}

	if r.GraceDaysPerMonth != nil && *r.GraceDaysPerMonth < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_days_per_month",
			Message: "grace_days_per_month must not be negative",
		})
	}

	if r.LateThresholdMinutes != nil && *r.LateThresholdMinutes < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "late_threshold_minutes must be at least 1",
		})
	}

	if r.AutoApproveUnderMinutes != nil && *r.AutoApproveUnderMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "auto_approve_under_minutes",
			Message: "auto_approve_under_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	IsEnabled               bool   `json:"is_enabled"`
	DeductionPreference     string `json:"deduction_preference"`
	GraceDaysPerMonth       int    `json:"grace_days_per_month"`
	LateThresholdMinutes    int    `json:"late_threshold_minutes"`
	AutoApproveUnderMinutes int    `json:"auto_approve_under_minutes"`
	UpdatedAt               string `json:"updated_at"`
}
