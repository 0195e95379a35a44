package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/schedule"
)

// HalfDayCutoffHour is the fixed local-time cutoff: a first IN after 12:00
// marks the day as a half day regardless of the shift start.
const HalfDayCutoffHour = 12

// Arrival is the timing classification for a day. LateMinutes and
// EarlyMinutes are mutually exclusive by construction.
type Arrival struct {
	Status       attendance.TimingStatus
	LateMinutes  int
	EarlyMinutes int
	IsHalfDay    bool
}

// Departure is the shift-end classification for a day. OvertimeMinutes and
// EarlyLeaveMinutes are mutually exclusive by construction.
type Departure struct {
	Status            attendance.DepartureStatus
	OvertimeMinutes   int
	EarlyLeaveMinutes int
}

// ClassifyArrival compares the first IN against the shift start.
// Grace is a monthly policy outcome applied by the late ledger, not a
// per-day timing fact, so it never appears here.
func ClassifyArrival(firstIn *time.Time, shift *schedule.WorkShift, lateThresholdMinutes int) Arrival {
	if firstIn == nil {
		return Arrival{Status: attendance.TimingUnclassified}
	}

	arrival := Arrival{
		IsHalfDay: isAfterHalfDayCutoff(*firstIn),
	}

	if shift == nil {
		// Missing shift configuration: surfaced as unclassified rather
		// than defaulted to on-time, so lateness is never silently hidden.
		arrival.Status = attendance.TimingUnclassified
		return arrival
	}

	shiftStart := atTimeOfDay(*firstIn, shift.ClockIn)
	offsetMinutes := int(firstIn.Sub(shiftStart) / time.Minute)

	switch {
	case offsetMinutes < 0:
		arrival.Status = attendance.TimingEarly
		arrival.EarlyMinutes = -offsetMinutes
	case offsetMinutes < lateThresholdMinutes:
		arrival.Status = attendance.TimingOnTime
	default:
		arrival.Status = attendance.TimingLate
		arrival.LateMinutes = offsetMinutes
	}

	return arrival
}

// ClassifyDeparture compares the last OUT against the shift end. A missing
// OUT is a terminal display state, not an error; the ledger treats such a
// day as incomplete.
func ClassifyDeparture(lastOut *time.Time, shift *schedule.WorkShift) Departure {
	if lastOut == nil {
		return Departure{Status: attendance.DepartureNotPunchedOut}
	}

	if shift == nil {
		return Departure{Status: attendance.DepartureUnclassified}
	}

	shiftEnd := atTimeOfDay(*lastOut, shift.ClockOut)
	offsetMinutes := int(lastOut.Sub(shiftEnd) / time.Minute)

	switch {
	case offsetMinutes > 0:
		return Departure{
			Status:          attendance.DepartureOvertime,
			OvertimeMinutes: offsetMinutes,
		}
	case offsetMinutes < 0:
		return Departure{
			Status:            attendance.DepartureEarlyLeave,
			EarlyLeaveMinutes: -offsetMinutes,
		}
	default:
		return Departure{Status: attendance.DepartureOnTime}
	}
}

// atTimeOfDay pins a stored time-of-day onto the reference instant's date
// and location.
func atTimeOfDay(reference time.Time, timeOfDay time.Time) time.Time {
	return time.Date(
		reference.Year(), reference.Month(), reference.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		reference.Location(),
	)
}

func isAfterHalfDayCutoff(firstIn time.Time) bool {
	cutoff := time.Date(
		firstIn.Year(), firstIn.Month(), firstIn.Day(),
		HalfDayCutoffHour, 0, 0, 0,
		firstIn.Location(),
	)
	return firstIn.After(cutoff)
}
