package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/firstmeeting/internal"
	"github.com/guilherme-santos/firstmeeting/internal/logging"
)

// Scope is the permission the client needs on the user's calendars.
const Scope = calendar.CalendarReadonlyScope

type Client struct {
	logger *slog.Logger
	opts   []option.ClientOption
}

// NewClient returns a Google Calendar provider. Extra options are appended
// after the authorized HTTP client, e.g. option.WithEndpoint in tests.
func NewClient(logger *slog.Logger, opts ...option.ClientOption) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		logger: logger,
		opts:   opts,
	}
}

// UpcomingEvents returns a single page of events starting at or after q.From,
// with recurring events expanded and ordered by start time.
func (c Client) UpcomingEvents(ctx context.Context, httpClient *http.Client, cal *internal.Calendar, q internal.Query) (internal.Iterator, error) {
	svc, err := c.calendarSvc(ctx, httpClient)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("listing events", logging.Calendar(cal.String()), logging.When(q.From.UTC().Format(time.RFC3339)))

	events, err := svc.Events.
		List(cal.ProviderID).
		Context(ctx).
		TimeMin(q.From.UTC().Format(time.RFC3339)).
		MaxResults(q.MaxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if errIsCode(err, http.StatusNotFound) {
		return nil, fmt.Errorf("google: %s: %w", cal, internal.ErrCalendarNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("google: listing events of %s: %w", cal, err)
	}
	return newEventIterator(events.Items), nil
}

func (c Client) calendarSvc(ctx context.Context, httpClient *http.Client) (*calendar.Service, error) {
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service: %w", err)
	}
	return svc, nil
}

func errIsCode(err error, code int) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code == code
}
