package repository

import (
	"context"

	"github.com/zymoune/feedstore-api/internal/domain/entity"
)

// SettingsRepository defines the interface for the notification settings
// singleton. Get returns the single row, creating it is the seeder's job.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.NotificationSettings, error)
	Create(ctx context.Context, settings *entity.NotificationSettings) error
	Update(ctx context.Context, settings *entity.NotificationSettings) error
}
