package lateness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-policy-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type LatenessServiceImpl struct {
	db *database.DB
	lateness.ApplicationRepository
	lateness.LedgerRepository
	settingsRepo   lateness.SettingsRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository

	runInTx func(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error
}

func NewLatenessService(
	db *database.DB,
	applicationRepo lateness.ApplicationRepository,
	ledgerRepo lateness.LedgerRepository,
	settingsRepo lateness.SettingsRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) lateness.LatenessService {
	return &LatenessServiceImpl{
		db:                    db,
		ApplicationRepository: applicationRepo,
		LedgerRepository:      ledgerRepo,
		settingsRepo:          settingsRepo,
		attendanceRepo:        attendanceRepo,
		employeeRepo:          employeeRepo,
		runInTx:               postgresql.WithTransaction,
	}
}

type tokenClaims struct {
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

func claimsFromContext(ctx context.Context) (tokenClaims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return tokenClaims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return tokenClaims{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return tokenClaims{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	role, _ := claims["role"].(string)

	return tokenClaims{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       user.Role(role),
	}, nil
}

// Apply implements lateness.LatenessService.
func (l *LatenessServiceImpl) Apply(ctx context.Context, req lateness.ApplyRequest) (lateness.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return lateness.ApplicationResponse{}, err
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		return lateness.ApplicationResponse{}, err
	}

	settings, err := l.getSettingsOrDefault(ctx, claims.CompanyID)
	if err != nil {
		return lateness.ApplicationResponse{}, err
	}
	if !settings.IsEnabled {
		return lateness.ApplicationResponse{}, lateness.ErrLatenessDisabled
	}

	record, err := l.attendanceRepo.GetByID(ctx, req.AttendanceID, claims.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return lateness.ApplicationResponse{}, attendance.ErrAttendanceNotFound
		}
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if record.EmployeeID != claims.EmployeeID {
		return lateness.ApplicationResponse{}, attendance.ErrUnauthorized
	}
	if record.TimingStatus != attendance.TimingLate {
		return lateness.ApplicationResponse{}, lateness.ErrNotLate
	}

	existing, err := l.ApplicationRepository.GetByAttendanceID(ctx, req.AttendanceID, claims.CompanyID)
	if err != nil {
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to check existing application: %w", err)
	}
	if existing != nil {
		return lateness.ApplicationResponse{}, lateness.ErrDuplicateApplication
	}

	now := time.Now()
	app := lateness.Application{
		ID:           uuid.NewString(),
		CompanyID:    claims.CompanyID,
		EmployeeID:   claims.EmployeeID,
		AttendanceID: req.AttendanceID,
		Reason:       req.Reason,
		Status:       lateness.ApplicationPending,
	}

	// Short lates under the configured threshold skip the approver queue
	// but still leave an application on record.
	if settings.AutoApproveUnderMinutes > 0 && record.LateMinutes < settings.AutoApproveUnderMinutes {
		app.Status = lateness.ApplicationApproved
		app.AutoApproved = true
		app.ApprovedAt = &now
	}

	app, err = l.ApplicationRepository.Create(ctx, app)
	if err != nil {
		if errors.Is(err, lateness.ErrDuplicateApplication) {
			return lateness.ApplicationResponse{}, lateness.ErrDuplicateApplication
		}
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to create late application: %w", err)
	}

	if app.Status == lateness.ApplicationApproved {
		if err := l.RecomputeMonth(ctx, claims.EmployeeID, record.Date.Year(), record.Date.Month(), claims.CompanyID); err != nil {
			return lateness.ApplicationResponse{}, err
		}
	}

	return l.buildApplicationResponse(ctx, app, &record)
}

// Approve implements lateness.LatenessService.
func (l *LatenessServiceImpl) Approve(ctx context.Context, req lateness.ApproveRequest) (lateness.ApplicationResponse, error) {
	return l.decide(ctx, req.ID, lateness.ApplicationApproved, nil)
}

// Reject implements lateness.LatenessService.
func (l *LatenessServiceImpl) Reject(ctx context.Context, req lateness.RejectRequest) (lateness.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return lateness.ApplicationResponse{}, err
	}
	return l.decide(ctx, req.ID, lateness.ApplicationRejected, &req.Reason)
}

// decide moves a pending application to its terminal state and, on
// approval, retroactively rebuilds the month's ledger.
func (l *LatenessServiceImpl) decide(ctx context.Context, id string, status lateness.ApplicationStatus, rejectionReason *string) (lateness.ApplicationResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return lateness.ApplicationResponse{}, err
	}
	if !user.CanApprove(claims.Role) {
		return lateness.ApplicationResponse{}, user.ErrApproverAccessRequired
	}

	app, err := l.ApplicationRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		if errors.Is(err, lateness.ErrApplicationNotFound) {
			return lateness.ApplicationResponse{}, lateness.ErrApplicationNotFound
		}
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to get late application: %w", err)
	}

	if app.Status != lateness.ApplicationPending {
		return lateness.ApplicationResponse{}, lateness.ErrApplicationProcessed
	}
	if app.EmployeeID == claims.EmployeeID {
		return lateness.ApplicationResponse{}, lateness.ErrSelfApproval
	}

	now := time.Now()
	app.Status = status
	app.ApprovedBy = &claims.EmployeeID
	app.ApprovedAt = &now
	app.RejectionReason = rejectionReason

	if err := l.ApplicationRepository.Update(ctx, app); err != nil {
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to update late application: %w", err)
	}

	record, err := l.attendanceRepo.GetByID(ctx, app.AttendanceID, claims.CompanyID)
	if err != nil {
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if status == lateness.ApplicationApproved {
		if err := l.RecomputeMonth(ctx, app.EmployeeID, record.Date.Year(), record.Date.Month(), claims.CompanyID); err != nil {
			return lateness.ApplicationResponse{}, err
		}
	}

	return l.buildApplicationResponse(ctx, app, &record)
}

// GetMyApplications implements lateness.LatenessService.
func (l *LatenessServiceImpl) GetMyApplications(ctx context.Context) ([]lateness.ApplicationResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	apps, err := l.ApplicationRepository.ListByEmployee(ctx, claims.EmployeeID, claims.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list late applications: %w", err)
	}

	responses := make([]lateness.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp, err := l.buildApplicationResponse(ctx, app, nil)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// MonthlyReport implements lateness.LatenessService.
func (l *LatenessServiceImpl) MonthlyReport(ctx context.Context, employeeID string, year int, month time.Month) (lateness.MonthlyReportResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return lateness.MonthlyReportResponse{}, err
	}

	if employeeID == "" {
		employeeID = claims.EmployeeID
	}
	if employeeID != claims.EmployeeID && !user.CanApprove(claims.Role) {
		return lateness.MonthlyReportResponse{}, attendance.ErrUnauthorized
	}

	// Rebuild before reading so the report reflects today's records and
	// any approvals granted since the last recomputation.
	if err := l.RecomputeMonth(ctx, employeeID, year, month, claims.CompanyID); err != nil {
		return lateness.MonthlyReportResponse{}, err
	}

	entries, err := l.LedgerRepository.ListMonth(ctx, employeeID, year, month, claims.CompanyID)
	if err != nil {
		return lateness.MonthlyReportResponse{}, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return mapReportToResponse(Summarize(employeeID, year, month, entries)), nil
}

// RecomputeMonth implements lateness.LatenessService.
//
// The stored ledger is a projection, so the whole month is replaced in one
// transaction. The earned-leave balance is corrected by the delta between
// the previous and new leave deductions, which keeps repeated runs from
// double-charging.
func (l *LatenessServiceImpl) RecomputeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) error {
	settings, err := l.getSettingsOrDefault(ctx, companyID)
	if err != nil {
		return err
	}

	records, err := l.attendanceRepo.ListLateByMonth(ctx, employeeID, year, month, settings.LateThresholdMinutes, companyID)
	if err != nil {
		return fmt.Errorf("failed to list late records: %w", err)
	}

	apps, err := l.ApplicationRepository.ListByEmployeeMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return fmt.Errorf("failed to list late applications: %w", err)
	}
	approved := make(map[string]bool, len(apps))
	for _, app := range apps {
		if app.Status == lateness.ApplicationApproved {
			approved[app.AttendanceID] = true
		}
	}

	emp, err := l.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}

	balance, err := l.employeeRepo.GetLeaveBalance(ctx, employeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to get leave balance: %w", err)
	}

	previous, err := l.LedgerRepository.ListMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return fmt.Errorf("failed to list previous ledger entries: %w", err)
	}
	var previousLeave float64
	for _, entry := range previous {
		previousLeave += entry.LeaveDays
	}

	// The stored balance already reflects this month's earlier deductions;
	// add them back so the computation sees the month from scratch.
	availableLeave := balance.Earned + previousLeave

	entries := ComputeMonth(LateDaysFromRecords(records), approved, settings, emp.DailyRate, availableLeave, time.Now())

	var newLeave float64
	for i := range entries {
		entries[i].ID = uuid.NewString()
		entries[i].CompanyID = companyID
		entries[i].EmployeeID = employeeID
		newLeave += entries[i].LeaveDays
	}

	err = l.runInTx(ctx, l.db, func(txCtx context.Context) error {
		if err := l.LedgerRepository.ReplaceMonth(txCtx, employeeID, year, month, companyID, entries); err != nil {
			return fmt.Errorf("failed to replace ledger month: %w", err)
		}
		if delta := newLeave - previousLeave; delta != 0 {
			if err := l.employeeRepo.AdjustEarnedLeave(txCtx, employeeID, companyID, -delta); err != nil {
				return fmt.Errorf("failed to adjust leave balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// GetSettings implements lateness.LatenessService.
func (l *LatenessServiceImpl) GetSettings(ctx context.Context) (lateness.SettingsResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return lateness.SettingsResponse{}, err
	}

	settings, err := l.getSettingsOrDefault(ctx, claims.CompanyID)
	if err != nil {
		return lateness.SettingsResponse{}, err
	}

	return mapSettingsToResponse(settings), nil
}

// UpdateSettings implements lateness.LatenessService.
func (l *LatenessServiceImpl) UpdateSettings(ctx context.Context, req lateness.UpdateSettingsRequest) (lateness.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return lateness.SettingsResponse{}, err
	}

	claims, err := claimsFromContext(ctx)
	if err != nil {
		return lateness.SettingsResponse{}, err
	}

	settings, err := l.getSettingsOrDefault(ctx, claims.CompanyID)
	if err != nil {
		return lateness.SettingsResponse{}, err
	}

	if req.IsEnabled != nil {
		settings.IsEnabled = *req.IsEnabled
	}
	if req.DeductionPreference != nil {
		settings.DeductionPreference = lateness.DeductionPreference(*req.DeductionPreference)
	}
	if req.GraceDaysPerMonth != nil {
		settings.GraceDaysPerMonth = *req.GraceDaysPerMonth
	}
	if req.LateThresholdMinutes != nil {
		settings.LateThresholdMinutes = *req.LateThresholdMinutes
	}
	if req.AutoApproveUnderMinutes != nil {
		settings.AutoApproveUnderMinutes = *req.AutoApproveUnderMinutes
	}

	settings, err = l.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		return lateness.SettingsResponse{}, fmt.Errorf("failed to update late settings: %w", err)
	}

	return mapSettingsToResponse(settings), nil
}

func (l *LatenessServiceImpl) getSettingsOrDefault(ctx context.Context, companyID string) (lateness.Settings, error) {
	settings, err := l.settingsRepo.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, lateness.ErrSettingsNotFound) {
			return lateness.DefaultSettings(companyID), nil
		}
		return lateness.Settings{}, fmt.Errorf("failed to get late settings: %w", err)
	}
	return settings, nil
}

// buildApplicationResponse maps an application, pulling in the attendance
// day and its current ledger position when available. record may be nil.
func (l *LatenessServiceImpl) buildApplicationResponse(ctx context.Context, app lateness.Application, record *attendance.Attendance) (lateness.ApplicationResponse, error) {
	resp := lateness.ApplicationResponse{
		ID:              app.ID,
		EmployeeID:      app.EmployeeID,
		AttendanceID:    app.AttendanceID,
		Reason:          app.Reason,
		Status:          string(app.Status),
		AutoApproved:    app.AutoApproved,
		RejectionReason: app.RejectionReason,
		ApprovedBy:      app.ApprovedBy,
		CreatedAt:       app.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if app.ApprovedAt != nil {
		formatted := app.ApprovedAt.Format("2006-01-02 15:04:05")
		resp.ApprovedAt = &formatted
	}

	if record == nil {
		fetched, err := l.attendanceRepo.GetByID(ctx, app.AttendanceID, app.CompanyID)
		if err != nil {
			return lateness.ApplicationResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
		}
		record = &fetched
	}
	resp.AttendanceDate = record.Date.Format("2006-01-02")
	resp.LateMinutes = record.LateMinutes

	entries, err := l.LedgerRepository.ListMonth(ctx, app.EmployeeID, record.Date.Year(), record.Date.Month(), app.CompanyID)
	if err != nil {
		return lateness.ApplicationResponse{}, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	for _, entry := range entries {
		if entry.AttendanceID != app.AttendanceID {
			continue
		}
		resp.MonthlyLateCount = entry.Ordinal
		resp.DeductionType = string(entry.DeductionType)
		resp.IsDeducted = entry.Deducted
		if entry.DeductionType == lateness.DeductionSalary {
			resp.DeductionAmount = entry.SalaryAmount.StringFixed(2)
		}
		break
	}

	return resp, nil
}

func mapSettingsToResponse(settings lateness.Settings) lateness.SettingsResponse {
	resp := lateness.SettingsResponse{
		IsEnabled:               settings.IsEnabled,
		DeductionPreference:     string(settings.DeductionPreference),
		GraceDaysPerMonth:       settings.GraceDaysPerMonth,
		LateThresholdMinutes:    settings.LateThresholdMinutes,
		AutoApproveUnderMinutes: settings.AutoApproveUnderMinutes,
	}
	if !settings.UpdatedAt.IsZero() {
		resp.UpdatedAt = settings.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

func mapReportToResponse(report lateness.MonthlyReport) lateness.MonthlyReportResponse {
	resp := lateness.MonthlyReportResponse{
		EmployeeID:           report.EmployeeID,
		Year:                 report.Year,
		Month:                int(report.Month),
		TotalLates:           report.TotalLates,
		ApprovedLates:        report.ApprovedLates,
		DeductibleLates:      report.DeductibleLates,
		TotalSalaryDeduction: report.TotalSalaryDeduction.StringFixed(2),
		TotalLeaveDeduction:  report.TotalLeaveDeduction,
		Entries:              make([]lateness.LedgerEntryResponse, 0, len(report.Entries)),
	}

	for _, entry := range report.Entries {
		resp.Entries = append(resp.Entries, lateness.LedgerEntryResponse{
			AttendanceID:      entry.AttendanceID,
			Date:              entry.Date.Format("2006-01-02"),
			Ordinal:           entry.Ordinal,
			LateMinutes:       entry.LateMinutes,
			UsedGrace:         entry.UsedGrace,
			ApprovedExemption: entry.ApprovedExemption,
			Incomplete:        entry.Incomplete,
			DeductionType:     string(entry.DeductionType),
			SalaryAmount:      entry.SalaryAmount.StringFixed(2),
			LeaveDays:         entry.LeaveDays,
			IsDeducted:        entry.Deducted,
		})
	}

	return resp
}
