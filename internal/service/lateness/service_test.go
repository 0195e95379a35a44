package lateness

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testSecret    = "test-secret-key-for-jwt"
)

var testJWT = jwt.NewJWTService(testSecret, "1h")

func authContext(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	tokenString, _, err := testJWT.GenerateAccessToken(employeeID, testCompanyID, role)
	require.NoError(t, err)
	token, err := testJWT.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ---------------------------------------------------------------------------
// in-memory fakes

type fakeApplicationRepo struct {
	apps map[string]lateness.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]lateness.Application)}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app lateness.Application) (lateness.Application, error) {
	for _, existing := range f.apps {
		if existing.AttendanceID == app.AttendanceID {
			return lateness.Application{}, lateness.ErrDuplicateApplication
		}
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string, companyID string) (lateness.Application, error) {
	app, ok := f.apps[id]
	if !ok || app.CompanyID != companyID {
		return lateness.Application{}, lateness.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepo) GetByAttendanceID(_ context.Context, attendanceID string, companyID string) (*lateness.Application, error) {
	for _, app := range f.apps {
		if app.AttendanceID == attendanceID && app.CompanyID == companyID {
			copied := app
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) Update(_ context.Context, app lateness.Application) error {
	if _, ok := f.apps[app.ID]; !ok {
		return lateness.ErrApplicationNotFound
	}
	f.apps[app.ID] = app
	return nil
}

func (f *fakeApplicationRepo) ListByEmployeeMonth(_ context.Context, employeeID string, _ int, _ time.Month, companyID string) ([]lateness.Application, error) {
	var out []lateness.Application
	for _, app := range f.apps {
		if app.EmployeeID == employeeID && app.CompanyID == companyID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByEmployee(_ context.Context, employeeID string, companyID string) ([]lateness.Application, error) {
	return f.ListByEmployeeMonth(context.Background(), employeeID, 0, time.January, companyID)
}

type fakeLedgerRepo struct {
	entries map[string][]lateness.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[string][]lateness.LedgerEntry)}
}

func ledgerKey(employeeID string, year int, month time.Month) string {
	return employeeID + "/" + time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (f *fakeLedgerRepo) ReplaceMonth(_ context.Context, employeeID string, year int, month time.Month, _ string, entries []lateness.LedgerEntry) error {
	f.entries[ledgerKey(employeeID, year, month)] = entries
	return nil
}

func (f *fakeLedgerRepo) ListMonth(_ context.Context, employeeID string, year int, month time.Month, _ string) ([]lateness.LedgerEntry, error) {
	return f.entries[ledgerKey(employeeID, year, month)], nil
}

type fakeSettingsRepo struct {
	settings *lateness.Settings
}

func (f *fakeSettingsRepo) GetByCompany(_ context.Context, _ string) (lateness.Settings, error) {
	if f.settings == nil {
		return lateness.Settings{}, lateness.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, settings lateness.Settings) (lateness.Settings, error) {
	settings.UpdatedAt = time.Now()
	f.settings = &settings
	return settings, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string, companyID string) (attendance.Attendance, error) {
	record, ok := f.records[id]
	if !ok || record.CompanyID != companyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time, _ string) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListLateByMonth(_ context.Context, employeeID string, year int, month time.Month, threshold int, companyID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, record := range f.records {
		if record.EmployeeID == employeeID &&
			record.CompanyID == companyID &&
			record.Date.Year() == year &&
			record.Date.Month() == month &&
			record.TimingStatus == attendance.TimingLate &&
			record.LateMinutes >= threshold {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.Filter, _ string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(_ context.Context, _ string, _ attendance.MyFilter, _ string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListLateEmployeeMonths(_ context.Context, _ int, _ time.Month, _ int) ([]attendance.EmployeeMonth, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	balances  map[string]*employee.LeaveBalance
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: make(map[string]employee.Employee),
		balances:  make(map[string]*employee.LeaveBalance),
	}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, _ string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetLeaveBalance(_ context.Context, employeeID string, _ string) (employee.LeaveBalance, error) {
	balance, ok := f.balances[employeeID]
	if !ok {
		return employee.LeaveBalance{EmployeeID: employeeID}, nil
	}
	return *balance, nil
}

func (f *fakeEmployeeRepo) AdjustEarnedLeave(_ context.Context, employeeID string, _ string, delta float64) error {
	balance, ok := f.balances[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	balance.Earned += delta
	if balance.Earned < 0 {
		balance.Earned = 0
	}
	return nil
}

// ---------------------------------------------------------------------------

type serviceFixture struct {
	svc            *LatenessServiceImpl
	appRepo        *fakeApplicationRepo
	ledgerRepo     *fakeLedgerRepo
	settingsRepo   *fakeSettingsRepo
	attendanceRepo *fakeAttendanceRepo
	employeeRepo   *fakeEmployeeRepo
}

func newFixture(settings lateness.Settings) *serviceFixture {
	f := &serviceFixture{
		appRepo:        newFakeApplicationRepo(),
		ledgerRepo:     newFakeLedgerRepo(),
		settingsRepo:   &fakeSettingsRepo{settings: &settings},
		attendanceRepo: newFakeAttendanceRepo(),
		employeeRepo:   newFakeEmployeeRepo(),
	}
	f.svc = &LatenessServiceImpl{
		ApplicationRepository: f.appRepo,
		LedgerRepository:      f.ledgerRepo,
		settingsRepo:          f.settingsRepo,
		attendanceRepo:        f.attendanceRepo,
		employeeRepo:          f.employeeRepo,
		runInTx: func(ctx context.Context, _ *database.DB, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
	return f
}

func (f *serviceFixture) addEmployee(id string, dailyRate int64, earnedLeave float64) {
	f.employeeRepo.employees[id] = employee.Employee{
		ID:        id,
		CompanyID: testCompanyID,
		FullName:  "Employee " + id,
		DailyRate: decimal.NewFromInt(dailyRate),
	}
	f.employeeRepo.balances[id] = &employee.LeaveBalance{EmployeeID: id, Earned: earnedLeave}
}

func (f *serviceFixture) addLateDay(id, employeeID string, dayOfMonth, lateMinutes int) {
	clockOut := time.Date(2026, time.August, dayOfMonth, 18, 0, 0, 0, time.UTC)
	f.attendanceRepo.records[id] = attendance.Attendance{
		ID:           id,
		EmployeeID:   employeeID,
		CompanyID:    testCompanyID,
		Date:         time.Date(2026, time.August, dayOfMonth, 0, 0, 0, 0, time.UTC),
		ClockOut:     &clockOut,
		TimingStatus: attendance.TimingLate,
		LateMinutes:  lateMinutes,
	}
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 15)

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	resp, err := f.svc.Apply(ctx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "traffic jam on the highway",
	})
	require.NoError(t, err)

	assert.Equal(t, string(lateness.ApplicationPending), resp.Status)
	assert.False(t, resp.AutoApproved)
	assert.Equal(t, "att-1", resp.AttendanceID)
	assert.Equal(t, 15, resp.LateMinutes)
}

func TestApply_ReasonTooShort(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	_, err := f.svc.Apply(ctx, lateness.ApplyRequest{AttendanceID: "att-1", Reason: "short"})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func TestApply_DuplicateRejected(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 15)

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	req := lateness.ApplyRequest{AttendanceID: "att-1", Reason: "traffic jam on the highway"}

	_, err := f.svc.Apply(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, req)
	assert.ErrorIs(t, err, lateness.ErrDuplicateApplication)
}

func TestApply_NotLate(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 0)
	record := f.attendanceRepo.records["att-1"]
	record.TimingStatus = attendance.TimingOnTime
	f.attendanceRepo.records["att-1"] = record

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	_, err := f.svc.Apply(ctx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "traffic jam on the highway",
	})

	assert.ErrorIs(t, err, lateness.ErrNotLate)
}

func TestApply_OtherEmployeesRecordRejected(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-2", 1000, 0)
	f.addLateDay("att-1", "emp-2", 3, 15)

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	_, err := f.svc.Apply(ctx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "traffic jam on the highway",
	})

	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestApply_DisabledPolicy(t *testing.T) {
	settings := enabledSettings(lateness.PreferSalary, 0)
	settings.IsEnabled = false
	f := newFixture(settings)

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	_, err := f.svc.Apply(ctx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "traffic jam on the highway",
	})

	assert.ErrorIs(t, err, lateness.ErrLatenessDisabled)
}

func TestApply_AutoApprovedUnderThreshold(t *testing.T) {
	settings := enabledSettings(lateness.PreferSalary, 0)
	settings.AutoApproveUnderMinutes = 10
	f := newFixture(settings)
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 5)

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	resp, err := f.svc.Apply(ctx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "train delayed this morning",
	})
	require.NoError(t, err)

	assert.Equal(t, string(lateness.ApplicationApproved), resp.Status)
	assert.True(t, resp.AutoApproved)

	// The auto-approval triggered a recompute that exempts the day.
	entries, err := f.ledgerRepo.ListMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].ApprovedExemption)
	assert.False(t, entries[0].Deducted)
}

func TestApprove_RemovesDeductionRetroactively(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 15)

	require.NoError(t, f.svc.RecomputeMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID))
	entries, _ := f.ledgerRepo.ListMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Deducted)

	applyCtx := authContext(t, "emp-1", user.RoleEmployee)
	created, err := f.svc.Apply(applyCtx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "doctor appointment ran long",
	})
	require.NoError(t, err)

	approveCtx := authContext(t, "mgr-1", user.RoleManager)
	resp, err := f.svc.Approve(approveCtx, lateness.ApproveRequest{ID: created.ID})
	require.NoError(t, err)

	assert.Equal(t, string(lateness.ApplicationApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "mgr-1", *resp.ApprovedBy)

	entries, _ = f.ledgerRepo.ListMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].ApprovedExemption)
	assert.False(t, entries[0].Deducted)
	assert.Equal(t, 1, entries[0].Ordinal)
}

func TestApprove_SelfApprovalRejected(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("mgr-1", 1000, 0)
	f.addLateDay("att-1", "mgr-1", 3, 15)

	applyCtx := authContext(t, "mgr-1", user.RoleManager)
	created, err := f.svc.Apply(applyCtx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "doctor appointment ran long",
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(applyCtx, lateness.ApproveRequest{ID: created.ID})
	assert.ErrorIs(t, err, lateness.ErrSelfApproval)
}

func TestApprove_RequiresApproverRole(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))

	ctx := authContext(t, "emp-2", user.RoleEmployee)
	_, err := f.svc.Approve(ctx, lateness.ApproveRequest{ID: "whatever"})

	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 15)

	applyCtx := authContext(t, "emp-1", user.RoleEmployee)
	created, err := f.svc.Apply(applyCtx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "doctor appointment ran long",
	})
	require.NoError(t, err)

	approveCtx := authContext(t, "mgr-1", user.RoleManager)
	_, err = f.svc.Approve(approveCtx, lateness.ApproveRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = f.svc.Reject(approveCtx, lateness.RejectRequest{ID: created.ID, Reason: "changed my mind about it"})
	assert.ErrorIs(t, err, lateness.ErrApplicationProcessed)
}

func TestReject_KeepsDeduction(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 15)

	require.NoError(t, f.svc.RecomputeMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID))

	applyCtx := authContext(t, "emp-1", user.RoleEmployee)
	created, err := f.svc.Apply(applyCtx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "doctor appointment ran long",
	})
	require.NoError(t, err)

	rejectCtx := authContext(t, "mgr-1", user.RoleManager)
	resp, err := f.svc.Reject(rejectCtx, lateness.RejectRequest{
		ID:     created.ID,
		Reason: "no supporting evidence given",
	})
	require.NoError(t, err)

	assert.Equal(t, string(lateness.ApplicationRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)

	entries, _ := f.ledgerRepo.ListMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Deducted)
	assert.False(t, entries[0].ApprovedExemption)
}

func TestRecomputeMonth_LeaveDeltaIsIdempotent(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferLeave, 0))
	f.addEmployee("emp-1", 1000, 2)
	f.addLateDay("att-1", "emp-1", 3, 15)
	f.addLateDay("att-2", "emp-1", 10, 20)

	require.NoError(t, f.svc.RecomputeMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID))
	assert.Equal(t, 0.0, f.employeeRepo.balances["emp-1"].Earned)

	// Running the recompute again must not double-charge the balance.
	require.NoError(t, f.svc.RecomputeMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID))
	assert.Equal(t, 0.0, f.employeeRepo.balances["emp-1"].Earned)

	entries, _ := f.ledgerRepo.ListMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, lateness.DeductionLeave, entry.DeductionType)
	}
}

func TestRecomputeMonth_ApprovalRefundsLeave(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferLeave, 0))
	f.addEmployee("emp-1", 1000, 1)
	f.addLateDay("att-1", "emp-1", 3, 15)

	require.NoError(t, f.svc.RecomputeMonth(context.Background(), "emp-1", 2026, time.August, testCompanyID))
	assert.Equal(t, 0.0, f.employeeRepo.balances["emp-1"].Earned)

	applyCtx := authContext(t, "emp-1", user.RoleEmployee)
	created, err := f.svc.Apply(applyCtx, lateness.ApplyRequest{
		AttendanceID: "att-1",
		Reason:       "doctor appointment ran long",
	})
	require.NoError(t, err)

	approveCtx := authContext(t, "mgr-1", user.RoleManager)
	_, err = f.svc.Approve(approveCtx, lateness.ApproveRequest{ID: created.ID})
	require.NoError(t, err)

	// The deducted leave day comes back once the exemption lands.
	assert.Equal(t, 1.0, f.employeeRepo.balances["emp-1"].Earned)
}

func TestMonthlyReport_EmployeeCannotReadOthers(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	_, err := f.svc.MonthlyReport(ctx, "emp-2", 2026, time.August)

	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestMonthlyReport_Aggregates(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 1))
	f.addEmployee("emp-1", 1000, 0)
	f.addLateDay("att-1", "emp-1", 3, 15)
	f.addLateDay("att-2", "emp-1", 10, 20)

	ctx := authContext(t, "mgr-1", user.RoleManager)
	report, err := f.svc.MonthlyReport(ctx, "emp-1", 2026, time.August)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", report.EmployeeID)
	assert.Equal(t, 2, report.TotalLates)
	assert.Equal(t, 1, report.DeductibleLates)
	assert.Equal(t, "1000.00", report.TotalSalaryDeduction)
	require.Len(t, report.Entries, 2)
	assert.True(t, report.Entries[0].UsedGrace)
}

func TestGetSettings_DefaultsWhenUnconfigured(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))
	f.settingsRepo.settings = nil

	ctx := authContext(t, "emp-1", user.RoleEmployee)
	resp, err := f.svc.GetSettings(ctx)
	require.NoError(t, err)

	assert.False(t, resp.IsEnabled)
	assert.Equal(t, string(lateness.PreferManual), resp.DeductionPreference)
	assert.Equal(t, 1, resp.LateThresholdMinutes)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 2))

	graceDays := 3
	preference := "leave"
	ctx := authContext(t, "admin-1", user.RoleAdmin)
	resp, err := f.svc.UpdateSettings(ctx, lateness.UpdateSettingsRequest{
		GraceDaysPerMonth:   &graceDays,
		DeductionPreference: &preference,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.GraceDaysPerMonth)
	assert.Equal(t, "leave", resp.DeductionPreference)
	// Untouched fields keep their stored values.
	assert.True(t, resp.IsEnabled)
	assert.Equal(t, 1, resp.LateThresholdMinutes)
}

func TestUpdateSettings_InvalidPreference(t *testing.T) {
	f := newFixture(enabledSettings(lateness.PreferSalary, 0))

	preference := "garnish"
	ctx := authContext(t, "admin-1", user.RoleAdmin)
	_, err := f.svc.UpdateSettings(ctx, lateness.UpdateSettingsRequest{DeductionPreference: &preference})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}
