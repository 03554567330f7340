package channels

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// fcmClient is the part of *messaging.Client used for delivery.
type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMPushSender sends pushes through Firebase Cloud Messaging.
type FCMPushSender struct {
	client fcmClient
}

func NewFCMPushSender(client *messaging.Client) *FCMPushSender {
	return &FCMPushSender{client: client}
}

// SendPush sends msg to the device registered under token.
func (s *FCMPushSender) SendPush(ctx context.Context, token string, msg PushMessage) error {
	if token == "" {
		return ErrNoPushTarget
	}

	fcmMsg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "lunch_notifications",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.client.Send(ctx, fcmMsg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
