// models/user.go
package models

import "time"

// Role values supplied by the identity provider.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleSuperuser = "superuser"
)

// User is the subset of the user document the notification layer reads.
type User struct {
	ID                      string                  `json:"id" bson:"id"`
	Name                    string                  `json:"name" bson:"name"`
	Email                   string                  `json:"email" bson:"email"`
	Role                    string                  `json:"role" bson:"role"`
	FCMToken                string                  `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences" bson:"notificationPreferences"`
	CreatedAt               time.Time               `json:"createdAt" bson:"createdAt"`
	UpdatedAt               time.Time               `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the user may manage notifications for others.
func (u *User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}

// Caller is the authenticated identity of the current request.
type Caller struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the caller holds the admin or superuser role.
func (c Caller) IsAdmin() bool {
	return IsAdminRole(c.Role)
}

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperuser
}
