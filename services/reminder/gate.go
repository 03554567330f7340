package reminder

import (
	"context"
	"errors"
	"time"

	notificationRepo "lunchbox/database/repository/notification"
	reminderRepo "lunchbox/database/repository/reminder"
	"lunchbox/models"
	"lunchbox/services/notification"

	"go.uber.org/zap"
)

const (
	OrderReminderMessage      = "Don't forget to place your lunch order for today!"
	MenuUpdateReminderMessage = "Today's menu is available. Check it out and place your order!"
)

// SettingsProvider supplies the configured trigger times.
type SettingsProvider interface {
	GetSettings(ctx context.Context) (models.Settings, error)
}

// Broadcaster is the part of the dispatcher the gate uses.
type Broadcaster interface {
	Notify(ctx context.Context, target notification.Target, kind models.NotificationKind, tag models.NotificationTag, message string) (*notification.DispatchResult, error)
}

// Gate fires each daily reminder at most once per weekday, at or after its
// configured time. The (kind, date) claim made through Claimer is the point
// where concurrent ticks are decided.
type Gate struct {
	Notifications notificationRepo.NotificationRepository
	Claimer       reminderRepo.MarkerClaimer
	Settings      SettingsProvider
	Dispatcher    Broadcaster
	Location      *time.Location
	Now           func() time.Time
	Logger        *zap.Logger
}

func (g *Gate) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func (g *Gate) now() time.Time {
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	if g.Location != nil {
		now = now.In(g.Location)
	}
	return now
}

// Tick evaluates both reminders against the current time.
func (g *Gate) Tick(ctx context.Context) models.TickResult {
	return g.TickAt(ctx, g.now())
}

// TickAt evaluates both reminders against now.
func (g *Gate) TickAt(ctx context.Context, now time.Time) models.TickResult {
	if g.Location != nil {
		now = now.In(g.Location)
	}

	s, err := g.Settings.GetSettings(ctx)
	if err != nil {
		g.logger().Warn("reminder settings unavailable, using defaults", zap.Error(err))
		s = models.Settings{}
	}
	s = s.WithDefaults()

	return models.TickResult{
		MenuUpdateReminder: g.evaluate(ctx, models.ReminderMenuUpdate, s.MenuUpdateReminderTime, MenuUpdateReminderMessage, now),
		OrderReminder:      g.evaluate(ctx, models.ReminderOrder, s.OrderReminderTime, OrderReminderMessage, now),
	}
}

func skipped(reason string) models.ReminderOutcome {
	return models.ReminderOutcome{Status: models.ReminderSkipped, Reason: reason}
}

func (g *Gate) evaluate(ctx context.Context, kind models.ReminderKind, at, message string, now time.Time) models.ReminderOutcome {
	log := g.logger().With(zap.String("reminder", string(kind)))

	if !IsWeekday(now) {
		return skipped(models.ReasonWeekend)
	}
	triggerAt, err := TriggerTime(now, at)
	if err != nil {
		log.Warn("invalid reminder time, skipping", zap.String("time", at), zap.Error(err))
		return skipped(models.ReasonCheckFailed)
	}
	if now.Before(triggerAt) {
		return skipped(models.ReasonBeforeWindow)
	}

	notificationKind := kind.NotificationKind()
	sent, err := g.Notifications.ExistsReminderSentToday(ctx, notificationKind, now)
	if err != nil {
		// The claim below still protects against a double fire.
		log.Warn("reminder history check failed", zap.Error(err))
	} else if sent {
		return skipped(models.ReasonAlreadySent)
	}

	date := models.DateKey(now)
	if err := g.Claimer.Claim(ctx, kind, date, now); err != nil {
		if errors.Is(err, models.ErrAlreadyClaimed) {
			return skipped(models.ReasonAlreadySent)
		}
		log.Error("reminder claim failed", zap.String("date", date), zap.Error(err))
		return skipped(models.ReasonCheckFailed)
	}

	result, err := g.Dispatcher.Notify(ctx, notification.ToEveryone(), notificationKind, models.TagScheduledReminder, message)
	if err != nil {
		log.Error("reminder broadcast failed, releasing claim", zap.String("date", date), zap.Error(err))
		if relErr := g.Claimer.Release(context.WithoutCancel(ctx), kind, date); relErr != nil {
			log.Error("reminder claim release failed", zap.String("date", date), zap.Error(relErr))
		}
		return skipped(models.ReasonDispatchFailed)
	}

	log.Info("reminder fired",
		zap.String("date", date),
		zap.Int64("emails", result.Delivered.Email),
		zap.Int64("pushes", result.Delivered.Push))
	return models.ReminderOutcome{Status: models.ReminderFired}
}
