package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-policy-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// LatenessRecomputer is the slice of the lateness service this package
// needs: a punch that changes a day's lateness invalidates the month's
// ledger projection.
type LatenessRecomputer interface {
	RecomputeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) error
}

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.PunchRepository
	attendance.AttendanceRepository
	schedule.ShiftRepository
	settingsRepo lateness.SettingsRepository
	recomputer   LatenessRecomputer

	runInTx func(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	punchRepo attendance.PunchRepository,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo schedule.ShiftRepository,
	settingsRepo lateness.SettingsRepository,
	recomputer LatenessRecomputer,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		PunchRepository:      punchRepo,
		AttendanceRepository: attendanceRepo,
		ShiftRepository:      shiftRepo,
		settingsRepo:         settingsRepo,
		recomputer:           recomputer,
		runInTx:              postgresql.WithTransaction,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// RecordPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return attendance.AttendanceResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	actorEmployeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actorEmployeeID
	}
	// Employees only punch for themselves; device gateways and managers
	// carry an approver-capable role.
	if employeeID != actorEmployeeID && !user.CanApprove(user.Role(role)) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse punch timestamp: %w", err)
		}
		timestamp = parsed
	}

	date := time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(), 0, 0, 0, 0, timestamp.Location())

	settings, err := a.settingsRepo.GetByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, lateness.ErrSettingsNotFound) {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get late settings: %w", err)
		}
		settings = lateness.DefaultSettings(companyID)
	}

	var record attendance.Attendance
	var punches []attendance.Punch

	err = a.runInTx(ctx, a.db, func(txCtx context.Context) error {
		punch := attendance.Punch{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       date,
			Type:       attendance.PunchType(req.Type),
			Timestamp:  timestamp,
			Location:   req.Location,
			DeviceID:   req.DeviceID,
		}
		if _, err := a.PunchRepository.Create(txCtx, punch); err != nil {
			return fmt.Errorf("failed to create punch: %w", err)
		}

		punches, err = a.PunchRepository.ListByEmployeeAndDate(txCtx, employeeID, date, companyID)
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}

		var shift *schedule.WorkShift
		found, err := a.ShiftRepository.GetByEmployeeAndDate(txCtx, employeeID, date, companyID)
		if err != nil {
			if !errors.Is(err, schedule.ErrShiftNotFound) {
				return fmt.Errorf("failed to get shift: %w", err)
			}
			// Missing shift keeps the day unclassified, never on-time.
		} else {
			shift = &found
		}

		record = a.rebuildRecord(employeeID, companyID, date, punches, shift, settings.LateThresholdMinutes)

		record, err = a.AttendanceRepository.Upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to upsert attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	// A late (or formerly late) day invalidates the month's ledger.
	if record.LateMinutes > 0 || record.TimingStatus == attendance.TimingLate {
		if err := a.recomputer.RecomputeMonth(ctx, employeeID, date.Year(), date.Month(), companyID); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to recompute late ledger: %w", err)
		}
	}

	return mapAttendanceToResponse(record, punches), nil
}

// rebuildRecord recomputes every derived field of the day from its punches.
// It never mutates incrementally; a new punch means a full rebuild.
func (a *AttendanceServiceImpl) rebuildRecord(
	employeeID, companyID string,
	date time.Time,
	punches []attendance.Punch,
	shift *schedule.WorkShift,
	lateThresholdMinutes int,
) attendance.Attendance {
	session := BuildSession(punches)
	arrival := ClassifyArrival(session.FirstIn, shift, lateThresholdMinutes)
	departure := ClassifyDeparture(session.LastOut, shift)

	return attendance.Attendance{
		EmployeeID:        employeeID,
		CompanyID:         companyID,
		Date:              date,
		ClockIn:           session.FirstIn,
		ClockOut:          session.LastOut,
		GrossMinutes:      session.GrossMinutes,
		BreakMinutes:      session.BreakMinutes,
		NetWorkingMinutes: session.NetWorkingMinutes,
		Status:            attendance.DayPresent,
		TimingStatus:      arrival.Status,
		LateMinutes:       arrival.LateMinutes,
		EarlyMinutes:      arrival.EarlyMinutes,
		IsHalfDay:         arrival.IsHalfDay,
		DepartureStatus:   departure.Status,
		OvertimeMinutes:   departure.OvertimeMinutes,
		EarlyLeaveMinutes: departure.EarlyLeaveMinutes,
	}
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return attendance.AttendanceResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	punches, err := a.PunchRepository.ListByEmployeeAndDate(ctx, record.EmployeeID, record.Date, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	return mapAttendanceToResponse(record, punches), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyFilter) (attendance.ListAttendanceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

func buildListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapAttendanceToResponse(record, nil))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(record attendance.Attendance, punches []attendance.Punch) attendance.AttendanceResponse {
	var employeeName string
	if record.EmployeeName != nil {
		employeeName = *record.EmployeeName
	}

	resp := attendance.AttendanceResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		EmployeeName:      employeeName,
		Date:              record.Date.Format("2006-01-02"),
		ClockInTime:       timePtrToString(record.ClockIn),
		ClockOutTime:      timePtrToString(record.ClockOut),
		GrossMinutes:      record.GrossMinutes,
		BreakMinutes:      record.BreakMinutes,
		NetWorkingMinutes: record.NetWorkingMinutes,
		Status:            record.Status,
		TimingStatus:      record.TimingStatus,
		LateMinutes:       record.LateMinutes,
		EarlyMinutes:      record.EarlyMinutes,
		IsHalfDay:         record.IsHalfDay,
		DepartureStatus:   record.DepartureStatus,
		OvertimeMinutes:   record.OvertimeMinutes,
		EarlyLeaveMinutes: record.EarlyLeaveMinutes,
	}

	if !record.CreatedAt.IsZero() {
		resp.CreatedAt = record.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !record.UpdatedAt.IsZero() {
		resp.UpdatedAt = record.UpdatedAt.Format("2006-01-02 15:04:05")
	}

	for _, p := range punches {
		resp.Punches = append(resp.Punches, attendance.PunchResponse{
			ID:         p.ID,
			EmployeeID: p.EmployeeID,
			Type:       string(p.Type),
			Timestamp:  p.Timestamp.Format(time.RFC3339),
			Location:   p.Location,
			DeviceID:   p.DeviceID,
		})
	}

	return resp
}
