package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID retrieves an employee by ID
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, manager_id, daily_rate, created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID,
		&emp.CompanyID,
		&emp.FullName,
		&emp.ManagerID,
		&emp.DailyRate,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetLeaveBalance retrieves the employee's current leave balances.
func (r *employeeRepository) GetLeaveBalance(ctx context.Context, employeeID string, companyID string) (employee.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.employee_id, lb.casual, lb.sick, lb.earned, lb.updated_at
		FROM leave_balances lb
		JOIN employees e ON e.id = lb.employee_id
		WHERE lb.employee_id = $1 AND e.company_id = $2
	`

	var balance employee.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&balance.EmployeeID,
		&balance.Casual,
		&balance.Sick,
		&balance.Earned,
		&balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No balance row means a zero balance, not a failure.
			return employee.LeaveBalance{EmployeeID: employeeID}, nil
		}
		return employee.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// AdjustEarnedLeave applies a delta to the earned bucket. The balance is
// clamped at zero; the Leave preference falls back to salary before the
// balance can go negative, so a clamp firing indicates drift, not policy.
func (r *employeeRepository) AdjustEarnedLeave(ctx context.Context, employeeID string, companyID string, delta float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances lb
		SET earned = GREATEST(lb.earned + $1, 0), updated_at = NOW()
		FROM employees e
		WHERE lb.employee_id = $2 AND e.id = lb.employee_id AND e.company_id = $3
	`

	tag, err := q.Exec(ctx, query, delta, employeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to adjust earned leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
