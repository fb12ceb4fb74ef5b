package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/guilherme-santos/firstmeeting/internal/logging"
)

type Provider struct {
	config *oauth2.Config
	store  Store
	logger *slog.Logger

	Silent      Strategy
	Interactive Strategy
}

func NewProvider(config *oauth2.Config, store Store, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provider{
		config:      config,
		store:       store,
		logger:      logging.WithOperation(logger, "auth"),
		Silent:      Silent{},
		Interactive: Interactive{},
	}
}

// Obtain returns a valid credential for scopes, reusing the stored token when
// possible. A newly issued or refreshed token is stored before returning.
func (p *Provider) Obtain(ctx context.Context, scopes []string) (*Credential, error) {
	current, err := p.load(scopes)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Valid() {
		p.logger.Debug("Using stored token")
		return p.credential(current), nil
	}
	return p.authorize(ctx, p.strategyFor(current), current, scopes)
}

// Login always goes through the interactive flow and replaces the stored
// token.
func (p *Provider) Login(ctx context.Context, scopes []string) (*Credential, error) {
	return p.authorize(ctx, p.Interactive, nil, scopes)
}

func (p *Provider) load(scopes []string) (*Token, error) {
	tok, err := p.store.Load()
	switch {
	case errors.Is(err, ErrNoToken):
		p.logger.Info("No stored token found")
		return nil, nil
	case errors.Is(err, ErrInvalidToken):
		// Handled like a missing token, the user authorizes again.
		p.logger.Warn("Ignoring stored token", logging.Err(err))
		return nil, nil
	case err != nil:
		return nil, err
	}
	if !tok.Covers(scopes) {
		p.logger.Info("Stored token was granted different scopes")
		return nil, nil
	}
	if len(tok.Scopes) == 0 {
		tok.Scopes = scopes
	}
	return tok, nil
}

func (p *Provider) strategyFor(current *Token) Strategy {
	if current != nil && current.RefreshToken != "" {
		return p.Silent
	}
	return p.Interactive
}

func (p *Provider) authorize(ctx context.Context, strategy Strategy, current *Token, scopes []string) (*Credential, error) {
	p.logger.Info("Authorizing", logging.Strategy(strategy.Name()))

	var currentTok *oauth2.Token
	if current != nil {
		currentTok = &current.Token
	}
	tok, err := strategy.Authorize(ctx, p.config, currentTok)
	if err != nil {
		return nil, fmt.Errorf("auth: %s authorization: %w", strategy.Name(), err)
	}

	stored := &Token{Token: *tok, Scopes: scopes}
	if err := p.store.Save(stored); err != nil {
		return nil, err
	}
	return p.credential(stored), nil
}

func (p *Provider) credential(tok *Token) *Credential {
	return &Credential{
		config: p.config,
		token:  tok,
		store:  p.store,
		logger: p.logger,
	}
}
