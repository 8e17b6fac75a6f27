package service

import (
	"context"

	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
)

// SettingsService handles the notification settings singleton
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the notification settings, creating defaults if the
// seeder has not run
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.NotificationSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.NotificationSettings{
			LowStockEnabled: true,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	LowStockRecipient *string
	LowStockEnabled   *bool
}

// UpdateSettings updates the notification settings singleton
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.NotificationSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.LowStockRecipient != nil {
		settings.LowStockRecipient = *input.LowStockRecipient
	}
	if input.LowStockEnabled != nil {
		settings.LowStockEnabled = *input.LowStockEnabled
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
