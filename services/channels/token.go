package channels

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenSkew renews tokens slightly before they expire.
const tokenSkew = time.Minute

// tokenFetcher obtains a fresh token; clientcredentials.Config satisfies it.
type tokenFetcher interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// TokenCache owns an app-only OAuth2 token and refreshes it on expiry.
type TokenCache struct {
	mu      sync.Mutex
	fetcher tokenFetcher
	token   *oauth2.Token
	now     func() time.Time
}

// NewGraphTokenCache builds a cache for the Microsoft Graph client
// credentials flow.
func NewGraphTokenCache(tenantID, clientID, clientSecret string) *TokenCache {
	return newTokenCache(&clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", tenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	})
}

func newTokenCache(f tokenFetcher) *TokenCache {
	return &TokenCache{fetcher: f, now: time.Now}
}

// IsValid reports whether the cached token can still be used.
func (c *TokenCache) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *TokenCache) validLocked() bool {
	if c.token == nil || c.token.AccessToken == "" {
		return false
	}
	if c.token.Expiry.IsZero() {
		return true
	}
	return c.now().Add(tokenSkew).Before(c.token.Expiry)
}

// AcquireToken returns the cached access token, fetching a new one when the
// cached token is missing or about to expire.
func (c *TokenCache) AcquireToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.validLocked() {
		return c.token.AccessToken, nil
	}
	tok, err := c.fetcher.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire token: %w", err)
	}
	c.token = tok
	return tok.AccessToken, nil
}

// Invalidate drops the cached token, e.g. after a 401.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
}
