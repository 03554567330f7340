package notification

import (
	"context"
	"sync/atomic"
	"time"

	notificationRepo "lunchbox/database/repository/notification"
	userRepo "lunchbox/database/repository/user"
	"lunchbox/models"
	"lunchbox/services/channels"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSendTimeout = 10 * time.Second
	defaultConcurrency = 8
)

// Target selects who a notification is addressed to.
type Target struct {
	UserIDs   []string
	Broadcast bool
}

func ToUser(id string) Target { return Target{UserIDs: []string{id}} }

func ToUsers(ids ...string) Target { return Target{UserIDs: ids} }

func ToEveryone() Target { return Target{Broadcast: true} }

func (t Target) isEmpty() bool { return !t.Broadcast && len(t.UserIDs) == 0 }

func (t Target) isSingle() bool { return !t.Broadcast && len(t.UserIDs) == 1 }

// DeliveryCounts counts external sends per channel.
type DeliveryCounts struct {
	Email int64 `json:"email"`
	Push  int64 `json:"push"`
}

// DispatchResult reports what a Notify call did.
type DispatchResult struct {
	Created      int                  `json:"created"`
	Failed       int                  `json:"failed"`
	Attempted    DeliveryCounts       `json:"attempted"`
	Delivered    DeliveryCounts       `json:"delivered"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// Dispatcher persists notifications and pushes them through external
// channels according to each recipient's preferences.
//
// In-app records are always created for the addressed users; preferences
// only gate email and push.
type Dispatcher struct {
	Notifications notificationRepo.NotificationRepository
	Users         userRepo.UserRepository
	Push          channels.PushSender
	Email         channels.EmailSender
	Logger        *zap.Logger
	SendTimeout   time.Duration
	Concurrency   int
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Notify creates the record(s) for target and attempts external delivery.
// Validation and store failures that leave nothing created are returned;
// channel failures are only logged.
func (d *Dispatcher) Notify(ctx context.Context, target Target, kind models.NotificationKind, tag models.NotificationTag, message string) (*DispatchResult, error) {
	if err := models.ValidateNotificationInput(kind, message); err != nil {
		return nil, err
	}
	if target.isEmpty() {
		return nil, models.NewValidationError("recipient", "a recipient or broadcast is required")
	}

	result := &DispatchResult{}
	var recipients []models.User

	switch {
	case target.Broadcast:
		n, err := d.Notifications.CreateBroadcast(ctx, kind, tag, message)
		if err != nil {
			return nil, err
		}
		result.Created = 1
		result.Notification = n

		users, err := d.Users.GetAll(ctx)
		if err != nil {
			d.logger().Warn("broadcast stored but recipients could not be resolved for external delivery",
				zap.String("kind", string(kind)), zap.Error(err))
			return result, nil
		}
		recipients = users

	case target.isSingle():
		n, err := d.Notifications.Create(ctx, target.UserIDs[0], kind, tag, message)
		if err != nil {
			return nil, err
		}
		result.Created = 1
		result.Notification = n
		recipients = d.resolveUsers(ctx, target.UserIDs, kind)

	default:
		ids := uniqueIDs(target.UserIDs)
		if len(ids) == 0 {
			return nil, models.NewValidationError("recipient", "recipients must not be empty")
		}
		created, err := d.Notifications.CreateMany(ctx, ids, kind, tag, message)
		result.Created = created
		result.Failed = len(ids) - created
		if err != nil {
			if created == 0 {
				return nil, err
			}
			d.logger().Warn("partial notification fan-out",
				zap.String("kind", string(kind)),
				zap.Int("created", created),
				zap.Int("failed", result.Failed),
				zap.Error(err))
		}
		recipients = d.resolveUsers(ctx, ids, kind)
	}

	d.deliver(ctx, recipients, kind, message, result)
	return result, nil
}

// NotifyAdmins addresses one record to every current admin and superuser.
func (d *Dispatcher) NotifyAdmins(ctx context.Context, kind models.NotificationKind, message string) (*DispatchResult, error) {
	admins, err := d.Users.GetByRoles(ctx, models.RoleAdmin, models.RoleSuperuser)
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		d.logger().Info("no admins to notify", zap.String("kind", string(kind)))
		return &DispatchResult{}, nil
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return d.Notify(ctx, ToUsers(ids...), kind, models.TagAdHoc, message)
}

func (d *Dispatcher) resolveUsers(ctx context.Context, ids []string, kind models.NotificationKind) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := d.Users.GetByID(ctx, id)
		if err != nil {
			d.logger().Warn("recipient not resolved, skipping external delivery",
				zap.String("recipient", id), zap.String("kind", string(kind)), zap.Error(err))
			continue
		}
		users = append(users, *u)
	}
	return users
}

func (d *Dispatcher) deliver(ctx context.Context, users []models.User, kind models.NotificationKind, message string, result *DispatchResult) {
	if len(users) == 0 {
		return
	}

	subject, html, err := renderEmail(kind, message)
	if err != nil {
		d.logger().Error("email template failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	emailReady := err == nil && d.Email != nil

	var emailAttempted, emailDelivered, pushAttempted, pushDelivered atomic.Int64

	limit := d.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i := range users {
		u := users[i]
		prefs := effectivePreferences(&u)
		if !ShouldReceive(prefs, kind) {
			continue
		}

		if emailReady && u.Email != "" && hasChannel(DeliveryChannels(prefs), models.ChannelEmail) {
			g.Go(func() error {
				emailAttempted.Add(1)
				if d.sendEmail(ctx, u, kind, subject, html) {
					emailDelivered.Add(1)
				}
				return nil
			})
		}
		if d.Push != nil && u.FCMToken != "" {
			g.Go(func() error {
				pushAttempted.Add(1)
				if d.sendPush(ctx, u, kind, message) {
					pushDelivered.Add(1)
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	result.Attempted = DeliveryCounts{Email: emailAttempted.Load(), Push: pushAttempted.Load()}
	result.Delivered = DeliveryCounts{Email: emailDelivered.Load(), Push: pushDelivered.Load()}
}

func (d *Dispatcher) sendTimeout() time.Duration {
	if d.SendTimeout <= 0 {
		return defaultSendTimeout
	}
	return d.SendTimeout
}

func (d *Dispatcher) sendEmail(ctx context.Context, u models.User, kind models.NotificationKind, subject, html string) bool {
	ctx, cancel := context.WithTimeout(ctx, d.sendTimeout())
	defer cancel()

	if err := d.Email.SendEmail(ctx, u.Email, subject, html); err != nil {
		d.logger().Warn("email delivery failed",
			zap.String("recipient", u.ID),
			zap.String("kind", string(kind)),
			zap.String("channel", string(models.ChannelEmail)),
			zap.Error(err))
		return false
	}
	return true
}

func (d *Dispatcher) sendPush(ctx context.Context, u models.User, kind models.NotificationKind, message string) bool {
	ctx, cancel := context.WithTimeout(ctx, d.sendTimeout())
	defer cancel()

	msg := channels.PushMessage{
		Title: subjectFor(kind),
		Body:  message,
		Data:  map[string]string{"type": string(kind)},
	}
	if err := d.Push.SendPush(ctx, u.FCMToken, msg); err != nil {
		d.logger().Warn("push delivery failed",
			zap.String("recipient", u.ID),
			zap.String("kind", string(kind)),
			zap.String("channel", string(models.ChannelPush)),
			zap.Error(err))
		return false
	}
	return true
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
