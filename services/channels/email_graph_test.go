package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	token       string
	invalidated int
}

func (s *stubTokens) AcquireToken(ctx context.Context) (string, error) { return s.token, nil }

func (s *stubTokens) Invalidate() { s.invalidated++ }

func TestGraphEmailSender_SendsMail(t *testing.T) {
	var got graphMessage
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	tokens := &stubTokens{token: "abc"}
	sender := newGraphEmailSender(resty.New().SetBaseURL(srv.URL), tokens, "lunch@corp.test")

	err := sender.SendEmail(context.Background(), "alice@corp.test", "Lunch order reminder", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", auth)
	assert.Equal(t, "/users/lunch@corp.test/sendMail", path)
	assert.Equal(t, "Lunch order reminder", got.Message.Subject)
	assert.Equal(t, "HTML", got.Message.Body.ContentType)
	require.Len(t, got.Message.ToRecipients, 1)
	assert.Equal(t, "alice@corp.test", got.Message.ToRecipients[0].EmailAddress.Address)
	assert.Zero(t, tokens.invalidated)
}

func TestGraphEmailSender_EscapesSender(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := newGraphEmailSender(resty.New().SetBaseURL(srv.URL), &stubTokens{token: "abc"}, "ops/../lunch?x@corp.test")

	require.NoError(t, sender.SendEmail(context.Background(), "alice@corp.test", "s", "b"))
	assert.Equal(t, "/users/ops%2F..%2Flunch%3Fx@corp.test/sendMail", path)
}

func TestGraphEmailSender_UnauthorizedInvalidatesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &stubTokens{token: "stale"}
	sender := newGraphEmailSender(resty.New().SetBaseURL(srv.URL), tokens, "lunch@corp.test")

	err := sender.SendEmail(context.Background(), "alice@corp.test", "s", "b")
	assert.Error(t, err)
	assert.Equal(t, 1, tokens.invalidated)
}

func TestGraphEmailSender_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	tokens := &stubTokens{token: "abc"}
	sender := newGraphEmailSender(resty.New().SetBaseURL(srv.URL), tokens, "lunch@corp.test")

	err := sender.SendEmail(context.Background(), "alice@corp.test", "s", "b")
	assert.ErrorContains(t, err, "500")
	assert.Zero(t, tokens.invalidated)
}
