package channels

import (
	"context"
	"errors"
)

// ErrNoPushTarget is returned when a user has no registered push token.
var ErrNoPushTarget = errors.New("no push subscription")

// PushMessage is the payload of a push notification.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushSender delivers a push notification to one device token.
type PushSender interface {
	SendPush(ctx context.Context, token string, msg PushMessage) error
}

// EmailSender delivers one HTML email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}


