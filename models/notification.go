package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// NotificationKind is the closed set of notification categories.
type NotificationKind string

const (
	KindOrderReminder  NotificationKind = "order_reminder"
	KindOrderConfirmed NotificationKind = "order_confirmed"
	KindOrderModified  NotificationKind = "order_modified"
	KindMenuUpdated    NotificationKind = "menu_updated"
)

// NotificationTag separates the scheduled daily reminders from ad hoc
// notifications that share the same kind.
type NotificationTag string

const (
	TagAdHoc             NotificationTag = "ad_hoc"
	TagScheduledReminder NotificationTag = "scheduled_reminder"
)

// MaxMessageLength bounds Notification.Message, counted in runes.
const MaxMessageLength = 500

// Kinds lists every accepted kind.
var Kinds = []NotificationKind{
	KindOrderReminder,
	KindOrderConfirmed,
	KindOrderModified,
	KindMenuUpdated,
}

// Valid reports whether k belongs to the closed kind set.
func (k NotificationKind) Valid() bool {
	switch k {
	case KindOrderReminder, KindOrderConfirmed, KindOrderModified, KindMenuUpdated:
		return true
	}
	return false
}

// Notification is a single in-app notification. A nil Recipient marks a
// broadcast visible to every user.
type Notification struct {
	ID        string           `json:"id" bson:"id"`
	Recipient *string          `json:"recipient" bson:"recipient"`
	Kind      NotificationKind `json:"kind" bson:"kind"`
	Tag       NotificationTag  `json:"tag" bson:"tag"`
	Message   string           `json:"message" bson:"message"`
	Read      bool             `json:"read" bson:"read"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}

// IsBroadcast reports whether the record is addressed to every user.
func (n *Notification) IsBroadcast() bool {
	return n.Recipient == nil
}

// RecipientID returns the addressed user id, or "" for broadcasts.
func (n *Notification) RecipientID() string {
	if n.Recipient == nil {
		return ""
	}
	return *n.Recipient
}

// ValidateNotificationInput checks kind and message before anything is written.
func ValidateNotificationInput(kind NotificationKind, message string) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	msg := strings.TrimSpace(message)
	if msg == "" {
		return NewValidationError("message", "message is required")
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		return NewValidationError("message", "message must be at most 500 characters")
	}
	return nil
}

// ListOptions narrows a notification listing.
type ListOptions struct {
	UnreadOnly bool
	Limit      int
	Skip       int
}

// NotificationCounts is returned by CountUnread.
type NotificationCounts struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
}

// CreateNotificationRequest is the admin-facing create payload. Broadcast and
// Recipient are mutually exclusive.
type CreateNotificationRequest struct {
	Recipient  string           `json:"recipient"`
	Recipients []string         `json:"recipients"`
	Broadcast  bool             `json:"broadcast"`
	Kind       NotificationKind `json:"kind"`
	Message    string           `json:"message"`
}

// NewNotification validates the input and builds an unread record stamped
// with now. A nil recipient builds a broadcast.
func NewNotification(recipient *string, kind NotificationKind, tag NotificationTag, message string, now time.Time) (*Notification, error) {
	if err := ValidateNotificationInput(kind, message); err != nil {
		return nil, err
	}
	if recipient != nil && strings.TrimSpace(*recipient) == "" {
		return nil, NewValidationError("recipient", "recipient must not be empty")
	}
	if tag == "" {
		tag = TagAdHoc
	}
	return &Notification{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Kind:      kind,
		Tag:       tag,
		Message:   strings.TrimSpace(message),
		Read:      false,
		CreatedAt: now,
	}, nil
}
