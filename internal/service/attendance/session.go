package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
)

// Session is the derived shape of one employee-day's punches: the IN/OUT
// envelope, the breaks between sessions, and the minute totals.
type Session struct {
	FirstIn *time.Time
	LastOut *time.Time
	Breaks  []attendance.BreakPeriod
	Punches []attendance.Punch // sorted ascending by timestamp

	GrossMinutes      int
	BreakMinutes      int
	NetWorkingMinutes int
}

// BuildSession derives the day session from raw punches. The input may be
// unordered or malformed (consecutive INs, trailing OUT); the envelope is
// always re-derived by type + timestamp extreme, never by position.
// Building twice from the same punches yields the same session.
func BuildSession(punches []attendance.Punch) Session {
	sorted := make([]attendance.Punch, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	session := Session{Punches: sorted}

	for i := range sorted {
		p := sorted[i]
		switch p.Type {
		case attendance.PunchIn:
			if session.FirstIn == nil || p.Timestamp.Before(*session.FirstIn) {
				ts := p.Timestamp
				session.FirstIn = &ts
			}
		case attendance.PunchOut:
			if session.LastOut == nil || p.Timestamp.After(*session.LastOut) {
				ts := p.Timestamp
				session.LastOut = &ts
			}
		}
	}

	// Only strict OUT-then-IN adjacent pairs count as breaks. Extra punches
	// of the same type stay on the timeline without producing intervals.
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].Type != attendance.PunchOut || sorted[i+1].Type != attendance.PunchIn {
			continue
		}
		minutes := wholeMinutes(sorted[i].Timestamp, sorted[i+1].Timestamp)
		session.Breaks = append(session.Breaks, attendance.BreakPeriod{
			Start:   sorted[i].Timestamp,
			End:     sorted[i+1].Timestamp,
			Minutes: minutes,
		})
		session.BreakMinutes += minutes
	}

	if session.FirstIn != nil && session.LastOut != nil {
		gross := wholeMinutes(*session.FirstIn, *session.LastOut)
		if gross > 0 {
			session.GrossMinutes = gross
		}
	}

	net := session.GrossMinutes - session.BreakMinutes
	if net < 0 {
		net = 0
	}
	session.NetWorkingMinutes = net

	return session
}

// wholeMinutes is the floored minute difference between two instants.
func wholeMinutes(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}
