package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nineToSixShift(t *testing.T) *schedule.WorkShift {
	t.Helper()
	clockIn, err := time.Parse("15:04", "09:00")
	require.NoError(t, err)
	clockOut, err := time.Parse("15:04", "18:00")
	require.NoError(t, err)
	return &schedule.WorkShift{
		ID:       "shift-1",
		ClockIn:  clockIn,
		ClockOut: clockOut,
	}
}

func at(t *testing.T, clock string) *time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-08-03T"+clock+":00Z")
	require.NoError(t, err)
	return &ts
}

func TestClassifyArrival_Late(t *testing.T) {
	arrival := ClassifyArrival(at(t, "09:15"), nineToSixShift(t), 1)

	assert.Equal(t, attendance.TimingLate, arrival.Status)
	assert.Equal(t, 15, arrival.LateMinutes)
	assert.Equal(t, 0, arrival.EarlyMinutes)
	assert.False(t, arrival.IsHalfDay)
}

func TestClassifyArrival_Early(t *testing.T) {
	arrival := ClassifyArrival(at(t, "08:45"), nineToSixShift(t), 1)

	assert.Equal(t, attendance.TimingEarly, arrival.Status)
	assert.Equal(t, 15, arrival.EarlyMinutes)
	assert.Equal(t, 0, arrival.LateMinutes)
}

func TestClassifyArrival_OnTimeExact(t *testing.T) {
	arrival := ClassifyArrival(at(t, "09:00"), nineToSixShift(t), 1)

	assert.Equal(t, attendance.TimingOnTime, arrival.Status)
	assert.Equal(t, 0, arrival.LateMinutes)
	assert.Equal(t, 0, arrival.EarlyMinutes)
}

func TestClassifyArrival_ThresholdBoundary(t *testing.T) {
	// With a 15-minute threshold, 09:14 is still on time and 09:15 is late.
	arrival := ClassifyArrival(at(t, "09:14"), nineToSixShift(t), 15)
	assert.Equal(t, attendance.TimingOnTime, arrival.Status)
	assert.Equal(t, 0, arrival.LateMinutes)

	arrival = ClassifyArrival(at(t, "09:15"), nineToSixShift(t), 15)
	assert.Equal(t, attendance.TimingLate, arrival.Status)
	assert.Equal(t, 15, arrival.LateMinutes)
}

func TestClassifyArrival_HalfDayAfterCutoff(t *testing.T) {
	arrival := ClassifyArrival(at(t, "12:30"), nineToSixShift(t), 1)

	assert.True(t, arrival.IsHalfDay)
	// Half-day is a display override: lateness is still computed.
	assert.Equal(t, attendance.TimingLate, arrival.Status)
	assert.Equal(t, 210, arrival.LateMinutes)
}

func TestClassifyArrival_NoonExactIsNotHalfDay(t *testing.T) {
	arrival := ClassifyArrival(at(t, "12:00"), nineToSixShift(t), 1)

	assert.False(t, arrival.IsHalfDay)
}

func TestClassifyArrival_NilFirstIn(t *testing.T) {
	arrival := ClassifyArrival(nil, nineToSixShift(t), 1)

	assert.Equal(t, attendance.TimingUnclassified, arrival.Status)
	assert.False(t, arrival.IsHalfDay)
}

func TestClassifyArrival_NilShift(t *testing.T) {
	arrival := ClassifyArrival(at(t, "12:30"), nil, 1)

	assert.Equal(t, attendance.TimingUnclassified, arrival.Status)
	// Half-day only depends on the fixed cutoff, not on shift config.
	assert.True(t, arrival.IsHalfDay)
}

func TestClassifyArrival_MutualExclusion(t *testing.T) {
	for _, clock := range []string{"08:30", "09:00", "09:30", "13:00"} {
		arrival := ClassifyArrival(at(t, clock), nineToSixShift(t), 1)
		assert.False(t, arrival.LateMinutes > 0 && arrival.EarlyMinutes > 0,
			"late and early minutes must never coexist at %s", clock)
	}
}

func TestClassifyDeparture_Overtime(t *testing.T) {
	departure := ClassifyDeparture(at(t, "19:30"), nineToSixShift(t))

	assert.Equal(t, attendance.DepartureOvertime, departure.Status)
	assert.Equal(t, 90, departure.OvertimeMinutes)
	assert.Equal(t, 0, departure.EarlyLeaveMinutes)
}

func TestClassifyDeparture_EarlyLeave(t *testing.T) {
	departure := ClassifyDeparture(at(t, "17:00"), nineToSixShift(t))

	assert.Equal(t, attendance.DepartureEarlyLeave, departure.Status)
	assert.Equal(t, 60, departure.EarlyLeaveMinutes)
	assert.Equal(t, 0, departure.OvertimeMinutes)
}

func TestClassifyDeparture_OnTime(t *testing.T) {
	departure := ClassifyDeparture(at(t, "18:00"), nineToSixShift(t))

	assert.Equal(t, attendance.DepartureOnTime, departure.Status)
	assert.Equal(t, 0, departure.OvertimeMinutes)
	assert.Equal(t, 0, departure.EarlyLeaveMinutes)
}

func TestClassifyDeparture_NotPunchedOut(t *testing.T) {
	departure := ClassifyDeparture(nil, nineToSixShift(t))

	assert.Equal(t, attendance.DepartureNotPunchedOut, departure.Status)
}

func TestClassifyDeparture_NilShift(t *testing.T) {
	departure := ClassifyDeparture(at(t, "18:00"), nil)

	assert.Equal(t, attendance.DepartureUnclassified, departure.Status)
}
