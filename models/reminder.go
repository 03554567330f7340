package models

import "time"

// ReminderKind identifies one of the two daily scheduled reminders.
type ReminderKind string

const (
	ReminderOrder      ReminderKind = "order_reminder"
	ReminderMenuUpdate ReminderKind = "menu_update_reminder"
)

// NotificationKind maps a reminder to the kind of record it broadcasts.
func (r ReminderKind) NotificationKind() NotificationKind {
	if r == ReminderMenuUpdate {
		return KindMenuUpdated
	}
	return KindOrderReminder
}

// ReminderMarker proves a reminder fired on Date (YYYY-MM-DD, scheduler
// timezone). (Kind, Date) is unique.
type ReminderMarker struct {
	Kind    ReminderKind `json:"kind" bson:"kind"`
	Date    string       `json:"date" bson:"date"`
	FiredAt time.Time    `json:"firedAt" bson:"firedAt"`
}

// ReminderOutcome is the per-reminder result of a scheduler tick.
type ReminderOutcome struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

const (
	ReminderFired   = "fired"
	ReminderSkipped = "skipped"
)

// Reasons attached to skipped reminders.
const (
	ReasonWeekend        = "weekend"
	ReasonBeforeWindow   = "before_window"
	ReasonAlreadySent    = "already_sent"
	ReasonDispatchFailed = "dispatch_failed"
	ReasonCheckFailed    = "check_failed"
)

// TickResult is returned by a scheduler tick.
type TickResult struct {
	MenuUpdateReminder ReminderOutcome `json:"menuUpdateReminder"`
	OrderReminder      ReminderOutcome `json:"orderReminder"`
}

// DayBounds returns [start of t's day, start of the next day) in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DateKey formats t's calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
