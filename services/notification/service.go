package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	notificationRepo "lunchbox/database/repository/notification"
	userRepo "lunchbox/database/repository/user"
	"lunchbox/models"

	"go.uber.org/zap"
)

// NotificationService is the surface exposed to the HTTP layer.
type NotificationService interface {
	ListNotifications(ctx context.Context, caller models.Caller, opts models.ListOptions) ([]models.Notification, error)
	CountNotifications(ctx context.Context, caller models.Caller) (models.NotificationCounts, error)
	CreateNotification(ctx context.Context, caller models.Caller, req models.CreateNotificationRequest) (*DispatchResult, error)
	MarkRead(ctx context.Context, caller models.Caller, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, caller models.Caller) (int64, error)
	GetPreferences(ctx context.Context, caller models.Caller) (models.NotificationPreferences, error)
	SetPreferences(ctx context.Context, caller models.Caller, prefs models.NotificationPreferences) (models.NotificationPreferences, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Notifications notificationRepo.NotificationRepository
	Users         userRepo.UserRepository
	Dispatcher    *Dispatcher
	RetentionDays int
	Now           func() time.Time
	Logger        *zap.Logger
}

func NewDefaultNotificationService(
	notifications notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	dispatcher *Dispatcher,
	retentionDays int,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if notifications == nil || users == nil || dispatcher == nil {
		return nil, fmt.Errorf("notification service initialization error: repository or dispatcher is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		Notifications: notifications,
		Users:         users,
		Dispatcher:    dispatcher,
		RetentionDays: retentionDays,
		Now:           time.Now,
		Logger:        logger,
	}, nil
}

func requireCaller(caller models.Caller) error {
	if caller.UserID == "" {
		return models.ErrUnauthorized
	}
	return nil
}

func (s *DefaultNotificationService) ListNotifications(ctx context.Context, caller models.Caller, opts models.ListOptions) ([]models.Notification, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.Notifications.ListFor(ctx, caller.UserID, opts)
}

func (s *DefaultNotificationService) CountNotifications(ctx context.Context, caller models.Caller) (models.NotificationCounts, error) {
	if err := requireCaller(caller); err != nil {
		return models.NotificationCounts{}, err
	}
	return s.Notifications.CountUnread(ctx, caller.UserID)
}

// CreateNotification lets an admin address a user, a list of users or
// everyone.
func (s *DefaultNotificationService) CreateNotification(ctx context.Context, caller models.Caller, req models.CreateNotificationRequest) (*DispatchResult, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if !req.Kind.Valid() {
		return nil, models.ErrInvalidKind
	}

	target, err := targetFromRequest(req)
	if err != nil {
		return nil, err
	}

	result, err := s.Dispatcher.Notify(ctx, target, req.Kind, models.TagAdHoc, req.Message)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("notification created",
		zap.String("by", caller.UserID),
		zap.String("kind", string(req.Kind)),
		zap.Bool("broadcast", target.Broadcast),
		zap.Int("created", result.Created))
	return result, nil
}

func targetFromRequest(req models.CreateNotificationRequest) (Target, error) {
	recipient := strings.TrimSpace(req.Recipient)
	set := 0
	if req.Broadcast {
		set++
	}
	if recipient != "" {
		set++
	}
	if len(req.Recipients) > 0 {
		set++
	}
	if set != 1 {
		return Target{}, models.NewValidationError("recipient", "exactly one of recipient, recipients or broadcast is required")
	}

	switch {
	case req.Broadcast:
		return ToEveryone(), nil
	case recipient != "":
		return ToUser(recipient), nil
	default:
		return ToUsers(req.Recipients...), nil
	}
}

// MarkRead flips a record to read. Owners and admins may mark addressed
// records; anyone may mark a broadcast, whose read flag is shared.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, caller models.Caller, id string) (*models.Notification, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, models.NewValidationError("id", "id is required")
	}

	owner := caller.UserID
	if caller.IsAdmin() {
		n, err := s.Notifications.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !n.IsBroadcast() {
			owner = n.RecipientID()
		}
	}

	n, err := s.Notifications.MarkRead(ctx, id, owner)
	if errors.Is(err, models.ErrForbidden) {
		s.Logger.Warn("mark read rejected",
			zap.String("caller", caller.UserID),
			zap.String("notification", id))
	}
	return n, err
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, caller models.Caller) (int64, error) {
	if err := requireCaller(caller); err != nil {
		return 0, err
	}
	return s.Notifications.MarkAllRead(ctx, caller.UserID)
}

func (s *DefaultNotificationService) GetPreferences(ctx context.Context, caller models.Caller) (models.NotificationPreferences, error) {
	if err := requireCaller(caller); err != nil {
		return models.NotificationPreferences{}, err
	}
	u, err := s.Users.GetByID(ctx, caller.UserID)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	return effectivePreferences(u), nil
}

func (s *DefaultNotificationService) SetPreferences(ctx context.Context, caller models.Caller, prefs models.NotificationPreferences) (models.NotificationPreferences, error) {
	if err := requireCaller(caller); err != nil {
		return models.NotificationPreferences{}, err
	}
	if err := prefs.Validate(); err != nil {
		return models.NotificationPreferences{}, err
	}
	if err := s.Users.UpdatePreferences(ctx, caller.UserID, prefs); err != nil {
		return models.NotificationPreferences{}, err
	}
	return prefs, nil
}

// PurgeExpired removes records older than the retention period.
func (s *DefaultNotificationService) PurgeExpired(ctx context.Context) (int64, error) {
	days := s.RetentionDays
	if days <= 0 {
		days = 30
	}
	deleted, err := s.Notifications.PurgeOlderThan(ctx, days, s.Now())
	if err != nil {
		return 0, err
	}
	s.Logger.Info("expired notifications purged", zap.Int("retentionDays", days), zap.Int64("deleted", deleted))
	return deleted, nil
}
