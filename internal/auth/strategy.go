package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Strategy produces a fresh token for cfg. current is the token loaded from
// the store, nil if there was none.
type Strategy interface {
	Name() string
	Authorize(ctx context.Context, cfg *oauth2.Config, current *oauth2.Token) (*oauth2.Token, error)
}

// Silent renews an expired token with its refresh token, without user
// interaction.
type Silent struct{}

func (Silent) Name() string {
	return "silent"
}

func (Silent) Authorize(ctx context.Context, cfg *oauth2.Config, current *oauth2.Token) (*oauth2.Token, error) {
	if current == nil || current.RefreshToken == "" {
		return nil, errors.New("no refresh token available")
	}
	tok, err := cfg.TokenSource(ctx, current).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	return tok, nil
}

// Interactive sends the user to the consent screen and waits for Google to
// redirect the browser back to a loopback server.
type Interactive struct {
	// Prompt shows the authorization URL to the user.
	Prompt func(authURL string)
	// Addr is where the loopback server listens, a random local port when
	// empty.
	Addr string
}

func (Interactive) Name() string {
	return "interactive"
}

type authResult struct {
	tok *oauth2.Token
	err error
}

func (s Interactive) Authorize(ctx context.Context, cfg *oauth2.Config, _ *oauth2.Token) (*oauth2.Token, error) {
	addr := s.Addr
	if addr == "" {
		addr = "localhost:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting redirect listener: %w", err)
	}

	flowCfg := *cfg
	// Redirect to the address actually bound, not to a name.
	flowCfg.RedirectURL = "http://" + ln.Addr().String() + "/"

	state := uuid.NewString()
	resultCh := make(chan authResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		if query.Get("state") != state {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Authorization link is not valid.")
			notify(resultCh, authResult{err: errors.New("oauth state does not match")})
			return
		}
		if e := query.Get("error"); e != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Authorization denied:", e)
			notify(resultCh, authResult{err: fmt.Errorf("authorization denied: %s", e)})
			return
		}

		tok, err := flowCfg.Exchange(ctx, query.Get("code"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Unable to retrieve token:", err)
			notify(resultCh, authResult{err: fmt.Errorf("exchanging code: %w", err)})
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "All good, you can close this window!")
		notify(resultCh, authResult{tok: tok})
	})

	server := &http.Server{Handler: mux}
	go server.Serve(ln)
	defer server.Close()

	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if s.Prompt != nil {
		s.Prompt(authURL)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		return res.tok, res.err
	}
}

// notify keeps the first result, later callbacks are ignored.
func notify(ch chan authResult, res authResult) {
	select {
	case ch <- res:
	default:
	}
}
