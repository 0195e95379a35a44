package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/cmlabs-hris/attendance-policy-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type lateSettingsRepository struct {
	db *database.DB
}

// NewLateSettingsRepository creates a new late settings repository
func NewLateSettingsRepository(db *database.DB) lateness.SettingsRepository {
	return &lateSettingsRepository{db: db}
}

// GetByCompany retrieves the company's settings singleton.
func (r *lateSettingsRepository) GetByCompany(ctx context.Context, companyID string) (lateness.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, is_enabled, deduction_preference,
			grace_days_per_month, late_threshold_minutes, auto_approve_under_minutes,
			updated_at
		FROM late_settings
		WHERE company_id = $1
	`

	var settings lateness.Settings
	var preference string
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.ID,
		&settings.CompanyID,
		&settings.IsEnabled,
		&preference,
		&settings.GraceDaysPerMonth,
		&settings.LateThresholdMinutes,
		&settings.AutoApproveUnderMinutes,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lateness.Settings{}, lateness.ErrSettingsNotFound
		}
		return lateness.Settings{}, fmt.Errorf("failed to get late settings: %w", err)
	}
	settings.DeductionPreference = lateness.DeductionPreference(preference)

	return settings, nil
}

// Upsert creates or replaces the company's settings singleton.
func (r *lateSettingsRepository) Upsert(ctx context.Context, settings lateness.Settings) (lateness.Settings, error) {
	q := GetQuerier(ctx, r.db)

	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}

	query := `
		INSERT INTO late_settings (
			id, company_id, is_enabled, deduction_preference,
			grace_days_per_month, late_threshold_minutes, auto_approve_under_minutes,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (company_id) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			deduction_preference = EXCLUDED.deduction_preference,
			grace_days_per_month = EXCLUDED.grace_days_per_month,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			auto_approve_under_minutes = EXCLUDED.auto_approve_under_minutes,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		settings.ID,
		settings.CompanyID,
		settings.IsEnabled,
		string(settings.DeductionPreference),
		settings.GraceDaysPerMonth,
		settings.LateThresholdMinutes,
		settings.AutoApproveUnderMinutes,
	).Scan(&settings.ID, &settings.UpdatedAt)
	if err != nil {
		return lateness.Settings{}, fmt.Errorf("failed to upsert late settings: %w", err)
	}

	return settings, nil
}
