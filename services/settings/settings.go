package settings

import (
	"context"

	settingsRepo "lunchbox/database/repository/settings"
	"lunchbox/models"

	"go.uber.org/zap"
)

// SettingsService exposes the reminder trigger times.
type SettingsService interface {
	// GetSettings returns stored settings, falling back to configured and
	// built-in defaults for unset times.
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, caller models.Caller, s models.Settings) (models.Settings, error)
}

// DefaultSettingsService is the production implementation.
type DefaultSettingsService struct {
	Repo     settingsRepo.SettingsRepository
	Fallback models.Settings
	Logger   *zap.Logger
}

func NewDefaultSettingsService(repo settingsRepo.SettingsRepository, fallback models.Settings, logger *zap.Logger) *DefaultSettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSettingsService{Repo: repo, Fallback: fallback, Logger: logger}
}

func (s *DefaultSettingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	stored, err := s.Repo.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if stored.MenuUpdateReminderTime == "" {
		stored.MenuUpdateReminderTime = s.Fallback.MenuUpdateReminderTime
	}
	if stored.OrderReminderTime == "" {
		stored.OrderReminderTime = s.Fallback.OrderReminderTime
	}
	return stored.WithDefaults(), nil
}

func (s *DefaultSettingsService) UpdateSettings(ctx context.Context, caller models.Caller, next models.Settings) (models.Settings, error) {
	if caller.UserID == "" {
		return models.Settings{}, models.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return models.Settings{}, models.ErrForbidden
	}
	if err := next.Validate(); err != nil {
		return models.Settings{}, err
	}
	if err := s.Repo.Update(ctx, next); err != nil {
		return models.Settings{}, err
	}
	s.Logger.Info("reminder settings updated",
		zap.String("by", caller.UserID),
		zap.String("menuUpdateReminderTime", next.MenuUpdateReminderTime),
		zap.String("orderReminderTime", next.OrderReminderTime))
	return s.GetSettings(ctx)
}
