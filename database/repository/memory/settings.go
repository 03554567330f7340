package memoryRepo

import (
	"context"
	"sync"
	"time"

	settingsRepo "lunchbox/database/repository/settings"
	"lunchbox/models"
)

// SettingsStore is an in-memory SettingsRepository.
type SettingsStore struct {
	mu       sync.RWMutex
	settings models.Settings
}

func NewSettingsStore(initial models.Settings) *SettingsStore {
	return &SettingsStore{settings: initial}
}

var _ settingsRepo.SettingsRepository = (*SettingsStore)(nil)

func (s *SettingsStore) Get(ctx context.Context) (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *SettingsStore) Update(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.UpdatedAt = time.Now()
	s.settings = settings
	return nil
}
