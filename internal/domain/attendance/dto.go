package attendance

import (
	"strings"

	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type RecordPunchRequest struct {
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`      // IN | OUT
	Timestamp  string  `json:"timestamp"` // RFC3339; empty means "now"
	Location   *string `json:"location,omitempty"`
	DeviceID   *string `json:"device_id,omitempty"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	punchType := strings.ToUpper(strings.TrimSpace(r.Type))
	if punchType != string(PunchIn) && punchType != string(PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}
	r.Type = punchType

	if r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	Timestamp  string  `json:"timestamp"`
	Location   *string `json:"location,omitempty"`
	DeviceID   *string `json:"device_id,omitempty"`
}

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	Date              string          `json:"date"`
	ClockInTime       *string         `json:"clock_in_time,omitempty"`
	ClockOutTime      *string         `json:"clock_out_time,omitempty"`
	GrossMinutes      int             `json:"gross_minutes"`
	BreakMinutes      int             `json:"break_minutes"`
	NetWorkingMinutes int             `json:"net_working_minutes"`
	Status            DayStatus       `json:"status"`
	TimingStatus      TimingStatus    `json:"timing_status"`
	LateMinutes       int             `json:"late_minutes"`
	EarlyMinutes      int             `json:"early_minutes"`
	IsHalfDay         bool            `json:"is_half_day"`
	DepartureStatus   DepartureStatus `json:"departure_status"`
	OvertimeMinutes   int             `json:"overtime_minutes"`
	EarlyLeaveMinutes int             `json:"early_leave_minutes"`
	Punches           []PunchResponse `json:"punches,omitempty"`
	CreatedAt         string          `json:"created_at,omitempty"`
	UpdatedAt         string          `json:"updated_at,omitempty"`
}

type Filter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	TimingStatus *string `json:"timing_status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, clock_in_time, timing_status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.TimingStatus != nil && *f.TimingStatus != "" {
		validStatuses := []string{"unclassified", "early", "on_time", "late"}
		if !validator.IsInSlice(*f.TimingStatus, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "timing_status",
				Message: "timing_status must be one of: unclassified, early, on_time, late",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "clock_in_time", "timing_status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, clock_in_time, timing_status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyFilter struct {
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	TimingStatus *string `json:"timing_status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MyFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.TimingStatus != nil && *f.TimingStatus != "" {
		validStatuses := []string{"unclassified", "early", "on_time", "late"}
		if !validator.IsInSlice(*f.TimingStatus, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "timing_status",
				Message: "timing_status must be one of: unclassified, early, on_time, late",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
