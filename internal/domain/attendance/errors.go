package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrPunchBeforeDay     = errors.New("punch timestamp does not belong to the given date")
	ErrInvalidPunchType   = errors.New("punch type must be IN or OUT")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
