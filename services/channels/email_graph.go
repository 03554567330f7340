package channels

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// tokenProvider is satisfied by *TokenCache.
type tokenProvider interface {
	AcquireToken(ctx context.Context) (string, error)
	Invalidate()
}

// GraphEmailSender sends mail through the Microsoft Graph sendMail API on
// behalf of a shared mailbox.
type GraphEmailSender struct {
	http   *resty.Client
	tokens tokenProvider
	from   string
}

func NewGraphEmailSender(tokens *TokenCache, from string) *GraphEmailSender {
	return newGraphEmailSender(resty.New().SetBaseURL(graphBaseURL), tokens, from)
}

func newGraphEmailSender(client *resty.Client, tokens tokenProvider, from string) *GraphEmailSender {
	return &GraphEmailSender{http: client, tokens: tokens, from: from}
}

type graphRecipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

type graphMessage struct {
	Message struct {
		Subject string `json:"subject"`
		Body    struct {
			ContentType string `json:"contentType"`
			Content     string `json:"content"`
		} `json:"body"`
		ToRecipients []graphRecipient `json:"toRecipients"`
	} `json:"message"`
	SaveToSentItems bool `json:"saveToSentItems"`
}

func newGraphMessage(to, subject, html string) graphMessage {
	var m graphMessage
	m.Message.Subject = subject
	m.Message.Body.ContentType = "HTML"
	m.Message.Body.Content = html
	var r graphRecipient
	r.EmailAddress.Address = to
	m.Message.ToRecipients = []graphRecipient{r}
	return m
}

func (g *GraphEmailSender) SendEmail(ctx context.Context, to, subject, html string) error {
	token, err := g.tokens.AcquireToken(ctx)
	if err != nil {
		return err
	}

	resp, err := g.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(newGraphMessage(to, subject, html)).
		SetPathParam("from", g.from).
		Post("/users/{from}/sendMail")
	if err != nil {
		return fmt.Errorf("graph sendMail: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		g.tokens.Invalidate()
	}
	if resp.StatusCode() != http.StatusAccepted && resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("graph sendMail: unexpected status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
