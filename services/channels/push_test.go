package channels

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFCM struct {
	sent []*messaging.Message
	err  error
}

func (s *stubFCM) Send(ctx context.Context, message *messaging.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, message)
	return "projects/lunch/messages/1", nil
}

func TestFCMPushSender_BuildsMessage(t *testing.T) {
	fcm := &stubFCM{}
	sender := &FCMPushSender{client: fcm}

	err := sender.SendPush(context.Background(), "device-1", PushMessage{
		Title: "Lunch order reminder",
		Body:  "Order now",
		Data:  map[string]string{"type": "order_reminder"},
	})
	require.NoError(t, err)
	require.Len(t, fcm.sent, 1)

	msg := fcm.sent[0]
	assert.Equal(t, "device-1", msg.Token)
	assert.Equal(t, "Lunch order reminder", msg.Notification.Title)
	assert.Equal(t, "Order now", msg.Notification.Body)
	assert.Equal(t, "order_reminder", msg.Data["type"])
	assert.Equal(t, "high", msg.Android.Priority)
}

func TestFCMPushSender_Errors(t *testing.T) {
	sender := &FCMPushSender{client: &stubFCM{err: errors.New("unregistered")}}

	err := sender.SendPush(context.Background(), "", PushMessage{})
	assert.ErrorIs(t, err, ErrNoPushTarget)

	err = sender.SendPush(context.Background(), "device-1", PushMessage{Title: "t"})
	assert.ErrorContains(t, err, "unregistered")
}
