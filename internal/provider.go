package internal

import (
	"context"
	"errors"
	"net/http"
)

var ErrCalendarNotFound = errors.New("calendar not found")

type Mux interface {
	Get(platform string) (Provider, error)
}

// Provider lists upcoming events of a calendar.
type Provider interface {
	UpcomingEvents(_ context.Context, _ *http.Client, _ *Calendar, _ Query) (Iterator, error)
}

type Iterator interface {
	Next() bool
	Event() *Event
	Err() error
}

// Mailer submits an RFC 822 message and returns the id assigned to it.
type Mailer interface {
	Send(_ context.Context, _ *http.Client, raw []byte) (string, error)
}

// Credential authorizes requests to the calendar and mail providers.
type Credential interface {
	Client(context.Context) *http.Client
}
