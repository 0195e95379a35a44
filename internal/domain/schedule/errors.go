package schedule

import "errors"

var (
	ErrShiftNotFound = errors.New("no shift configured for employee")
)
