package userRepo

import (
	"context"

	"lunchbox/models"
)

// UserRepository defines the user lookups the notification layer needs.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByRoles retrieves every user holding one of roles.
	GetByRoles(ctx context.Context, roles ...string) ([]models.User, error)
	// GetAll retrieves every user with the fields needed for delivery.
	GetAll(ctx context.Context) ([]models.User, error)
	// UpdatePreferences replaces the embedded notification preferences.
	UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) error
}
