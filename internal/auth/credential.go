package auth

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/guilherme-santos/firstmeeting/internal/logging"
)

// Credential is a token usable for the scopes it was obtained for.
type Credential struct {
	config *oauth2.Config
	store  Store
	logger *slog.Logger

	mu    sync.Mutex
	token *Token
}

func (c *Credential) Token() *oauth2.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok := c.token.Token
	return &tok
}

func (c *Credential) Scopes() []string {
	return c.token.Scopes
}

// Client returns an HTTP client that authorizes requests with the credential.
// The client refreshes the token on its own when it expires; refreshed tokens
// are written to the store and reused by clients created afterwards.
func (c *Credential) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, &persistingTokenSource{
		base: c.config.TokenSource(ctx, c.Token()),
		cred: c,
	})
}

type persistingTokenSource struct {
	base oauth2.TokenSource
	cred *Credential
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.cred.update(tok)
	return tok, nil
}

// update records tok and stores it when it differs from the current token.
func (c *Credential) update(tok *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tok.AccessToken == c.token.AccessToken {
		return
	}
	c.token = &Token{Token: *tok, Scopes: c.token.Scopes}
	if err := c.store.Save(c.token); err != nil {
		// The request can still go through with the new token.
		c.logger.Warn("Unable to save refreshed token", logging.Err(err))
	}
}
