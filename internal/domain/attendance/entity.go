package attendance

import (
	"time"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch is a single immutable clock event. Punches are never edited; the
// day's Attendance record is rebuilt from scratch whenever one arrives.
type Punch struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Type       PunchType
	Timestamp  time.Time
	Location   *string
	DeviceID   *string
	CreatedAt  time.Time
}

// TimingStatus is the arrival classification relative to shift start.
// A day is exactly one of these; the boolean-flag style (isEarly + isLate
// coexisting) is deliberately not modeled.
type TimingStatus string

const (
	TimingUnclassified TimingStatus = "unclassified" // no shift configuration
	TimingEarly        TimingStatus = "early"
	TimingOnTime       TimingStatus = "on_time"
	TimingLate         TimingStatus = "late"
)

// DepartureStatus is the classification relative to shift end.
type DepartureStatus string

const (
	DepartureNotPunchedOut DepartureStatus = "not_punched_out"
	DepartureOnTime        DepartureStatus = "on_time"
	DepartureOvertime      DepartureStatus = "overtime"
	DepartureEarlyLeave    DepartureStatus = "early_leave"
	DepartureUnclassified  DepartureStatus = "unclassified"
)

// DayStatus is the coarse presence status of the calendar day. It is owned
// by external collaborators (leave/holiday calendars); punch ingestion only
// ever sets Present.
type DayStatus string

const (
	DayPresent DayStatus = "present"
	DayAbsent  DayStatus = "absent"
	DayLeave   DayStatus = "leave"
	DayHoliday DayStatus = "holiday"
	DayWeekend DayStatus = "weekend"
)

// Attendance is the classified record for one (employee, calendar date).
// It is recomputed in full from the day's punches on every ingestion,
// never appended to.
type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time

	ClockIn  *time.Time // earliest IN punch
	ClockOut *time.Time // latest OUT punch

	GrossMinutes      int
	BreakMinutes      int
	NetWorkingMinutes int

	Status            DayStatus
	TimingStatus      TimingStatus
	LateMinutes       int
	EarlyMinutes      int
	IsHalfDay         bool
	DepartureStatus   DepartureStatus
	OvertimeMinutes   int
	EarlyLeaveMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// BreakPeriod is derived from a strict OUT-then-IN adjacent punch pair.
// It is never stored.
type BreakPeriod struct {
	Start   time.Time
	End     time.Time
	Minutes int
}
