package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type lateApplicationRepository struct {
	db *database.DB
}

// NewLateApplicationRepository creates a new late application repository
func NewLateApplicationRepository(db *database.DB) lateness.ApplicationRepository {
	return &lateApplicationRepository{db: db}
}

const lateApplicationColumns = `
	id, company_id, employee_id, attendance_id, reason, status,
	auto_approved, rejection_reason, approved_by, approved_at,
	created_at, updated_at
`

// Create inserts a new application. The UNIQUE constraint on attendance_id
// backs up the service-level duplicate check under concurrency.
func (r *lateApplicationRepository) Create(ctx context.Context, app lateness.Application) (lateness.Application, error) {
	q := GetQuerier(ctx, r.db)

	if app.ID == "" {
		app.ID = uuid.New().String()
	}

	query := `
		INSERT INTO late_applications (
			id, company_id, employee_id, attendance_id, reason, status,
			auto_approved, rejection_reason, approved_by, approved_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		app.ID,
		app.CompanyID,
		app.EmployeeID,
		app.AttendanceID,
		app.Reason,
		string(app.Status),
		app.AutoApproved,
		app.RejectionReason,
		app.ApprovedBy,
		app.ApprovedAt,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return lateness.Application{}, lateness.ErrDuplicateApplication
		}
		return lateness.Application{}, fmt.Errorf("failed to create late application: %w", err)
	}

	return app, nil
}

// GetByID retrieves a late application by ID
func (r *lateApplicationRepository) GetByID(ctx context.Context, id string, companyID string) (lateness.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM late_applications
		WHERE id = $1 AND company_id = $2
	`, lateApplicationColumns)

	app, err := scanLateApplication(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lateness.Application{}, lateness.ErrApplicationNotFound
		}
		return lateness.Application{}, fmt.Errorf("failed to get late application: %w", err)
	}

	return app, nil
}

// GetByAttendanceID returns nil without error when no application exists.
func (r *lateApplicationRepository) GetByAttendanceID(ctx context.Context, attendanceID string, companyID string) (*lateness.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM late_applications
		WHERE attendance_id = $1 AND company_id = $2
	`, lateApplicationColumns)

	app, err := scanLateApplication(q.QueryRow(ctx, query, attendanceID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get late application by attendance: %w", err)
	}

	return &app, nil
}

// Update persists a status transition.
func (r *lateApplicationRepository) Update(ctx context.Context, app lateness.Application) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE late_applications
		SET status = $1, rejection_reason = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		string(app.Status),
		app.RejectionReason,
		app.ApprovedBy,
		app.ApprovedAt,
		app.ID,
		app.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update late application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lateness.ErrApplicationNotFound
	}

	return nil
}

// ListByEmployeeMonth returns the applications whose attendance day falls
// within the given month.
func (r *lateApplicationRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]lateness.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			la.id, la.company_id, la.employee_id, la.attendance_id, la.reason, la.status,
			la.auto_approved, la.rejection_reason, la.approved_by, la.approved_at,
			la.created_at, la.updated_at
		FROM late_applications la
		JOIN attendances a ON a.id = la.attendance_id
		WHERE la.employee_id = $1
			AND la.company_id = $2
			AND EXTRACT(YEAR FROM a.date) = $3
			AND EXTRACT(MONTH FROM a.date) = $4
		ORDER BY la.created_at
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list late applications: %w", err)
	}
	defer rows.Close()

	return collectLateApplications(rows)
}

// ListByEmployee retrieves all applications for one employee, newest first.
func (r *lateApplicationRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]lateness.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM late_applications
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY created_at DESC
	`, lateApplicationColumns)

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list late applications: %w", err)
	}
	defer rows.Close()

	return collectLateApplications(rows)
}

func scanLateApplication(row pgx.Row) (lateness.Application, error) {
	var app lateness.Application
	var status string
	err := row.Scan(
		&app.ID,
		&app.CompanyID,
		&app.EmployeeID,
		&app.AttendanceID,
		&app.Reason,
		&status,
		&app.AutoApproved,
		&app.RejectionReason,
		&app.ApprovedBy,
		&app.ApprovedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return lateness.Application{}, err
	}
	app.Status = lateness.ApplicationStatus(status)
	return app, nil
}

func collectLateApplications(rows pgx.Rows) ([]lateness.Application, error) {
	var apps []lateness.Application
	for rows.Next() {
		app, err := scanLateApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan late application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate late applications: %w", err)
	}
	return apps, nil
}
