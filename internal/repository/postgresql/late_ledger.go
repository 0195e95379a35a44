package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type lateLedgerRepository struct {
	db *database.DB
}

// NewLateLedgerRepository creates a new late ledger repository
func NewLateLedgerRepository(db *database.DB) lateness.LedgerRepository {
	return &lateLedgerRepository{db: db}
}

// ReplaceMonth swaps the month's entries for an employee in one shot.
// An advisory lock on (employee, month) serializes concurrent
// recomputations; the caller is expected to run this inside a transaction
// so the lock is released on commit or rollback.
func (r *lateLedgerRepository) ReplaceMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string, entries []lateness.LedgerEntry) error {
	q := GetQuerier(ctx, r.db)

	lockKey := fmt.Sprintf("late_ledger:%s:%d-%02d", employeeID, year, int(month))
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("failed to acquire ledger lock: %w", err)
	}

	deleteQuery := `
		DELETE FROM late_ledger_entries
		WHERE employee_id = $1
			AND company_id = $2
			AND EXTRACT(YEAR FROM date) = $3
			AND EXTRACT(MONTH FROM date) = $4
	`
	if _, err := q.Exec(ctx, deleteQuery, employeeID, companyID, year, int(month)); err != nil {
		return fmt.Errorf("failed to clear ledger month: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(entries))
	for _, entry := range entries {
		id := entry.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows = append(rows, []interface{}{
			id,
			entry.CompanyID,
			entry.EmployeeID,
			entry.AttendanceID,
			entry.Date,
			entry.Ordinal,
			entry.LateMinutes,
			entry.UsedGrace,
			entry.ApprovedExemption,
			entry.Incomplete,
			string(entry.DeductionType),
			entry.SalaryAmount,
			entry.LeaveDays,
			entry.Deducted,
			entry.ComputedAt,
		})
	}

	_, err := q.CopyFrom(ctx,
		pgx.Identifier{"late_ledger_entries"},
		[]string{
			"id", "company_id", "employee_id", "attendance_id", "date",
			"ordinal", "late_minutes", "used_grace", "approved_exemption",
			"incomplete", "deduction_type", "salary_amount", "leave_days",
			"deducted", "computed_at",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entries: %w", err)
	}

	return nil
}

// ListMonth returns the month's entries ordered by ordinal.
func (r *lateLedgerRepository) ListMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]lateness.LedgerEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			id, company_id, employee_id, attendance_id, date,
			ordinal, late_minutes, used_grace, approved_exemption,
			incomplete, deduction_type, salary_amount, leave_days,
			deducted, computed_at
		FROM late_ledger_entries
		WHERE employee_id = $1
			AND company_id = $2
			AND EXTRACT(YEAR FROM date) = $3
			AND EXTRACT(MONTH FROM date) = $4
		ORDER BY ordinal
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []lateness.LedgerEntry
	for rows.Next() {
		var entry lateness.LedgerEntry
		var deductionType string
		err := rows.Scan(
			&entry.ID,
			&entry.CompanyID,
			&entry.EmployeeID,
			&entry.AttendanceID,
			&entry.Date,
			&entry.Ordinal,
			&entry.LateMinutes,
			&entry.UsedGrace,
			&entry.ApprovedExemption,
			&entry.Incomplete,
			&deductionType,
			&entry.SalaryAmount,
			&entry.LeaveDays,
			&entry.Deducted,
			&entry.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.DeductionType = lateness.DeductionType(deductionType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}
