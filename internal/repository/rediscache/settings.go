package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-policy-go/internal/domain/lateness"
	"github.com/redis/go-redis/v9"
)

const settingsTTL = 5 * time.Minute

// SettingsRepository is a read-through cache in front of the PostgreSQL
// settings repository. The settings singleton is read on every ledger
// recomputation, which makes it the hottest read in the system. A Redis
// failure degrades to the underlying store, never to an error.
type SettingsRepository struct {
	next   lateness.SettingsRepository
	client *redis.Client
	logger *slog.Logger
}

func NewSettingsRepository(next lateness.SettingsRepository, client *redis.Client, logger *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		next:   next,
		client: client,
		logger: logger,
	}
}

func settingsKey(companyID string) string {
	return fmt.Sprintf("late_settings:%s", companyID)
}

// GetByCompany implements lateness.SettingsRepository.
func (r *SettingsRepository) GetByCompany(ctx context.Context, companyID string) (lateness.Settings, error) {
	key := settingsKey(companyID)

	cached, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var settings lateness.Settings
		if err := json.Unmarshal(cached, &settings); err == nil {
			return settings, nil
		}
		// Unreadable payload falls through to the store and gets rewritten.
	} else if err != redis.Nil {
		r.logger.Warn("late settings cache read failed", "error", err)
	}

	settings, err := r.next.GetByCompany(ctx, companyID)
	if err != nil {
		return lateness.Settings{}, err
	}

	if payload, err := json.Marshal(settings); err == nil {
		if err := r.client.Set(ctx, key, payload, settingsTTL).Err(); err != nil {
			r.logger.Warn("late settings cache write failed", "error", err)
		}
	}

	return settings, nil
}

// Upsert implements lateness.SettingsRepository. The cache entry is dropped
// rather than rewritten so a failed invalidation can only cause a stale read
// within the TTL, not a permanently wrong one.
func (r *SettingsRepository) Upsert(ctx context.Context, settings lateness.Settings) (lateness.Settings, error) {
	updated, err := r.next.Upsert(ctx, settings)
	if err != nil {
		return lateness.Settings{}, err
	}

	if err := r.client.Del(ctx, settingsKey(updated.CompanyID)).Err(); err != nil {
		r.logger.Warn("late settings cache invalidation failed", "error", err)
	}

	return updated, nil
}
