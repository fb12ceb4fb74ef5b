// Package fake provides in-memory calendar and mail providers for tests.
package fake

import (
	"context"
	"net/http"

	"github.com/guilherme-santos/firstmeeting/internal"
)

// Credential hands out the default HTTP client.
type Credential struct{}

func (Credential) Client(context.Context) *http.Client {
	return http.DefaultClient
}

// Provider returns Events for every query, in the order given.
type Provider struct {
	Events []*internal.Event
	Err    error

	Calendars []internal.Calendar
	Queries   []internal.Query
	// Served counts how many events were handed out through iterators.
	Served int
}

func (p *Provider) UpcomingEvents(_ context.Context, _ *http.Client, cal *internal.Calendar, q internal.Query) (internal.Iterator, error) {
	p.Calendars = append(p.Calendars, *cal)
	p.Queries = append(p.Queries, q)
	if p.Err != nil {
		return nil, p.Err
	}
	return &iterator{p: p}, nil
}

type iterator struct {
	p       *Provider
	pos     int
	current *internal.Event
}

func (it *iterator) Next() bool {
	if it.pos >= len(it.p.Events) {
		return false
	}
	it.current = it.p.Events[it.pos]
	it.pos++
	it.p.Served++
	return true
}

func (it *iterator) Event() *internal.Event {
	return it.current
}

func (it *iterator) Err() error {
	return nil
}

// Mux serves the same provider for every platform.
type Mux struct {
	Provider internal.Provider
}

func (m Mux) Get(string) (internal.Provider, error) {
	return m.Provider, nil
}

// Mailer records the messages it is asked to send.
type Mailer struct {
	Sent [][]byte
	Err  error
}

func (m *Mailer) Send(_ context.Context, _ *http.Client, raw []byte) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Sent = append(m.Sent, raw)
	return "fake-id", nil
}
