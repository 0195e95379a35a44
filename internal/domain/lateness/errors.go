package lateness

import "errors"

// Lateness domain errors
var (
	// Application lifecycle
	ErrDuplicateApplication = errors.New("an application already exists for this attendance record")
	ErrApplicationNotFound  = errors.New("late application not found")
	ErrApplicationProcessed = errors.New("late application has already been approved or rejected")
	ErrSelfApproval         = errors.New("applicants cannot approve or reject their own application")
	ErrNotLate              = errors.New("attendance record is not late, nothing to apply for")
	ErrIncompleteDay        = errors.New("attendance record has no clock-out, it is not deductible")

	// Configuration
	ErrSettingsNotFound = errors.New("late settings not configured for this company")
	ErrLatenessDisabled = errors.New("lateness policy is disabled for this company")
)
