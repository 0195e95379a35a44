package attendance

import "context"

// AttendanceService is the punch-to-attendance pipeline surface.
type AttendanceService interface {
	// RecordPunch ingests one clock event and synchronously rebuilds the
	// day's classified record.
	RecordPunch(ctx context.Context, req RecordPunchRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter Filter) (ListAttendanceResponse, error)
	GetMyAttendance(ctx context.Context, filter MyFilter) (ListAttendanceResponse, error)
}
