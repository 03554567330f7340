package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	InternalToken string

	// Notification endpoints
	ListNotifications  gin.HandlerFunc
	CountNotifications gin.HandlerFunc
	CreateNotification gin.HandlerFunc
	MarkRead           gin.HandlerFunc
	MarkAllRead        gin.HandlerFunc
	GetPreferences     gin.HandlerFunc
	SetPreferences     gin.HandlerFunc

	// Admin settings
	GetSettings    gin.HandlerFunc
	UpdateSettings gin.HandlerFunc

	// Internal endpoints
	SchedulerTick      gin.HandlerFunc
	PurgeNotifications gin.HandlerFunc
	HandleEvent        gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the typed handlers.
func NewHandlerBundle(n *NotificationHandler, s *SettingsHandler, sch *SchedulerHandler, ev *EventsHandler, internalToken string) *HandlerBundle {
	return &HandlerBundle{
		InternalToken: internalToken,

		ListNotifications:  n.ListNotificationsHandler,
		CountNotifications: n.CountNotificationsHandler,
		CreateNotification: n.CreateNotificationHandler,
		MarkRead:           n.MarkReadHandler,
		MarkAllRead:        n.MarkAllReadHandler,
		GetPreferences:     n.GetPreferencesHandler,
		SetPreferences:     n.SetPreferencesHandler,

		GetSettings:    s.GetSettingsHandler,
		UpdateSettings: s.UpdateSettingsHandler,

		SchedulerTick:      sch.TickHandler,
		PurgeNotifications: sch.PurgeHandler,
		HandleEvent:        ev.HandleEvent,
	}
}
