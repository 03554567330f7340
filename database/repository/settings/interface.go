package settingsRepo

import (
	"context"

	"lunchbox/models"
)

// SettingsRepository stores the single application settings document.
type SettingsRepository interface {
	// Get returns the stored settings; unset fields are left empty.
	Get(ctx context.Context) (models.Settings, error)
	// Update replaces the stored settings.
	Update(ctx context.Context, s models.Settings) error
}
