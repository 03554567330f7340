package channels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("lunch@corp.test", "alice@corp.test", "Menu update", "<p>hi</p>"))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, headers, "From: lunch@corp.test")
	assert.Contains(t, headers, "To: alice@corp.test")
	assert.Contains(t, headers, "Subject: Menu update")
	assert.Contains(t, headers, `Content-Type: text/html; charset="utf-8"`)
	assert.Equal(t, "<p>hi</p>", body)
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	raw := string(buildMessage("lunch@corp.test", "alice@corp.test\r\nBcc: eve@corp.test", "Hi", "body"))
	assert.NotContains(t, raw, "\r\nBcc:")
}

func TestNewSMTPEmailSender_DefaultsFromToUsername(t *testing.T) {
	s := NewSMTPEmailSender("smtp.corp.test", "465", "bot@corp.test", "secret", "")
	assert.Equal(t, "bot@corp.test", s.from)
}
