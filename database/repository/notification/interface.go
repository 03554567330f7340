package notificationRepo

import (
	"context"
	"time"

	"lunchbox/models"
)

// NotificationRepository is the persistence boundary for notification records.
type NotificationRepository interface {
	// Create validates and stores one record addressed to recipient.
	Create(ctx context.Context, recipient string, kind models.NotificationKind, tag models.NotificationTag, message string) (*models.Notification, error)
	// CreateMany stores one record per recipient. Records created before a
	// failure are kept; the returned count reflects them.
	CreateMany(ctx context.Context, recipients []string, kind models.NotificationKind, tag models.NotificationTag, message string) (int, error)
	// CreateBroadcast stores a single record with no recipient.
	CreateBroadcast(ctx context.Context, kind models.NotificationKind, tag models.NotificationTag, message string) (*models.Notification, error)
	// GetByID returns models.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListFor returns records addressed to userID or broadcast, newest first.
	ListFor(ctx context.Context, userID string, opts models.ListOptions) ([]models.Notification, error)
	// MarkRead flips read on a record addressed to callerID or broadcast.
	// Other records yield models.ErrForbidden.
	MarkRead(ctx context.Context, id, callerID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (models.NotificationCounts, error)
	PurgeOlderThan(ctx context.Context, days int, now time.Time) (int64, error)
	// ExistsReminderSentToday reports whether a scheduled reminder broadcast of
	// kind was created on now's calendar day.
	ExistsReminderSentToday(ctx context.Context, kind models.NotificationKind, now time.Time) (bool, error)
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// NormalizeListOptions clamps limit and skip.
func NormalizeListOptions(opts models.ListOptions) models.ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Limit > MaxListLimit {
		opts.Limit = MaxListLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return opts
}
