package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date,
	a.clock_in, a.clock_out,
	a.gross_minutes, a.break_minutes, a.net_working_minutes,
	a.status, a.timing_status, a.late_minutes, a.early_minutes, a.is_half_day,
	a.departure_status, a.overtime_minutes, a.early_leave_minutes,
	a.created_at, a.updated_at
`

// Upsert inserts or fully replaces the record for (employee, date). Every
// derived column is overwritten so the row always mirrors the punch set.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, date,
			clock_in, clock_out,
			gross_minutes, break_minutes, net_working_minutes,
			status, timing_status, late_minutes, early_minutes, is_half_day,
			departure_status, overtime_minutes, early_leave_minutes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			gross_minutes = EXCLUDED.gross_minutes,
			break_minutes = EXCLUDED.break_minutes,
			net_working_minutes = EXCLUDED.net_working_minutes,
			status = EXCLUDED.status,
			timing_status = EXCLUDED.timing_status,
			late_minutes = EXCLUDED.late_minutes,
			early_minutes = EXCLUDED.early_minutes,
			is_half_day = EXCLUDED.is_half_day,
			departure_status = EXCLUDED.departure_status,
			overtime_minutes = EXCLUDED.overtime_minutes,
			early_leave_minutes = EXCLUDED.early_leave_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.CompanyID,
		record.Date,
		record.ClockIn,
		record.ClockOut,
		record.GrossMinutes,
		record.BreakMinutes,
		record.NetWorkingMinutes,
		string(record.Status),
		string(record.TimingStatus),
		record.LateMinutes,
		record.EarlyMinutes,
		record.IsHalfDay,
		string(record.DepartureStatus),
		record.OvertimeMinutes,
		record.EarlyLeaveMinutes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return record, nil
}

// GetByID retrieves an attendance record by ID
func (r *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.id = $1 AND a.company_id = $2
	`, attendanceColumns)

	record, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate returns nil without error when the day has no record.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2 AND a.company_id = $3
	`, attendanceColumns)

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &record, nil
}

// ListLateByMonth returns the month's late records sorted by date ascending.
func (r *attendanceRepository) ListLateByMonth(ctx context.Context, employeeID string, year int, month time.Month, threshold int, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.employee_id = $1
			AND a.company_id = $2
			AND EXTRACT(YEAR FROM a.date) = $3
			AND EXTRACT(MONTH FROM a.date) = $4
			AND a.timing_status = 'late'
			AND a.late_minutes >= $5
		ORDER BY a.date ASC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, employeeID, companyID, year, int(month), threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list late attendances: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// List retrieves attendances with filtering, pagination and sorting.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.Filter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClause += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		whereClause += fmt.Sprintf(" AND e.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.TimingStatus != nil && *filter.TimingStatus != "" {
		whereClause += fmt.Sprintf(" AND a.timing_status = $%d", argIdx)
		args = append(args, *filter.TimingStatus)
		argIdx++
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	// Sort columns come from a validated whitelist, never from raw input.
	sortColumn := map[string]string{
		"date":          "a.date",
		"clock_in_time": "a.clock_in",
		"timing_status": "a.timing_status",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "a.date"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, e.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendanceWithName(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, total, nil
}

// GetMyAttendance retrieves the requesting employee's own records.
func (r *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE a.employee_id = $1 AND a.company_id = $2"
	args := []interface{}{employeeID, companyID}
	argIdx := 3

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.TimingStatus != nil && *filter.TimingStatus != "" {
		whereClause += fmt.Sprintf(" AND a.timing_status = $%d", argIdx)
		args = append(args, *filter.TimingStatus)
		argIdx++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendances a %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		%s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListLateEmployeeMonths returns distinct employee-months containing at
// least one late record, for the recompute job.
func (r *attendanceRepository) ListLateEmployeeMonths(ctx context.Context, year int, month time.Month, threshold int) ([]attendance.EmployeeMonth, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id, company_id
		FROM attendances
		WHERE EXTRACT(YEAR FROM date) = $1
			AND EXTRACT(MONTH FROM date) = $2
			AND timing_status = 'late'
			AND late_minutes >= $3
	`

	rows, err := q.Query(ctx, query, year, int(month), threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list late employee months: %w", err)
	}
	defer rows.Close()

	var months []attendance.EmployeeMonth
	for rows.Next() {
		em := attendance.EmployeeMonth{Year: year, Month: month}
		if err := rows.Scan(&em.EmployeeID, &em.CompanyID); err != nil {
			return nil, fmt.Errorf("failed to scan employee month: %w", err)
		}
		months = append(months, em)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee months: %w", err)
	}

	return months, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var record attendance.Attendance
	var status, timingStatus, departureStatus string
	err := row.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.CompanyID,
		&record.Date,
		&record.ClockIn,
		&record.ClockOut,
		&record.GrossMinutes,
		&record.BreakMinutes,
		&record.NetWorkingMinutes,
		&status,
		&timingStatus,
		&record.LateMinutes,
		&record.EarlyMinutes,
		&record.IsHalfDay,
		&departureStatus,
		&record.OvertimeMinutes,
		&record.EarlyLeaveMinutes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	record.Status = attendance.DayStatus(status)
	record.TimingStatus = attendance.TimingStatus(timingStatus)
	record.DepartureStatus = attendance.DepartureStatus(departureStatus)
	return record, nil
}

func scanAttendanceWithName(rows pgx.Rows) (attendance.Attendance, error) {
	var record attendance.Attendance
	var status, timingStatus, departureStatus string
	var employeeName *string
	err := rows.Scan(
		&record.ID,
		&record.EmployeeID,
		&record.CompanyID,
		&record.Date,
		&record.ClockIn,
		&record.ClockOut,
		&record.GrossMinutes,
		&record.BreakMinutes,
		&record.NetWorkingMinutes,
		&status,
		&timingStatus,
		&record.LateMinutes,
		&record.EarlyMinutes,
		&record.IsHalfDay,
		&departureStatus,
		&record.OvertimeMinutes,
		&record.EarlyLeaveMinutes,
		&record.CreatedAt,
		&record.UpdatedAt,
		&employeeName,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to scan attendance: %w", err)
	}
	record.Status = attendance.DayStatus(status)
	record.TimingStatus = attendance.TimingStatus(timingStatus)
	record.DepartureStatus = attendance.DepartureStatus(departureStatus)
	record.EmployeeName = employeeName
	return record, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, nil
}
