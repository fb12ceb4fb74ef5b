package selector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guilherme-santos/firstmeeting/internal"
	"github.com/guilherme-santos/firstmeeting/internal/logging"
)

// DefaultPageSize is how many upcoming events are looked at.
const DefaultPageSize = 30

type (
	Calendar      = internal.Calendar
	Event         = internal.Event
	SelectedEvent = internal.SelectedEvent
)

type Selector struct {
	logger *slog.Logger
	mux    internal.Mux
	cal    *Calendar

	PageSize int64
	// Location decides what "today" means, time.Local when nil.
	Location *time.Location
}

func New(logger *slog.Logger, mux internal.Mux, cal *Calendar) *Selector {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Selector{
		logger:   logging.WithOperation(logger, "select").With(logging.Calendar(cal.String())),
		mux:      mux,
		cal:      cal,
		PageSize: DefaultPageSize,
	}
}

// Selection is the outcome of looking for the next event. Candidate is the
// first confirmed event with a precise start time, Event is that same event
// when it also passed the same-day policy.
type Selection struct {
	Candidate *SelectedEvent
	Event     *SelectedEvent
}

// NextEventToday returns the first confirmed event with a precise start time
// at or after now. When sameDay is set, that event must also start on the
// same local day as now. A nil event means there is nothing to remind about.
func (s Selector) NextEventToday(ctx context.Context, cred internal.Credential, now time.Time, sameDay bool) (*SelectedEvent, error) {
	sel, err := s.Next(ctx, cred, now, sameDay)
	if err != nil {
		return nil, err
	}
	return sel.Event, nil
}

// Next is NextEventToday but also reports the candidate that the same-day
// policy rejected.
func (s Selector) Next(ctx context.Context, cred internal.Credential, now time.Time, sameDay bool) (Selection, error) {
	provider, err := s.mux.Get(s.cal.Platform)
	if err != nil {
		return Selection{}, err
	}
	it, err := provider.UpcomingEvents(ctx, cred.Client(ctx), s.cal, internal.Query{
		From:       now,
		MaxResults: s.PageSize,
	})
	if err != nil {
		return Selection{}, fmt.Errorf("listing upcoming events: %w", err)
	}

	first, err := s.firstCandidate(it)
	if err != nil {
		return Selection{}, err
	}
	if first == nil {
		s.logger.Info("No events coming up")
		return Selection{}, nil
	}

	loc := s.location()
	if when := internal.LocalDate(first.When, loc); sameDay && !when.Equal(internal.LocalDate(now, loc)) {
		s.logger.Info("Next event is not today", logging.Event(first.Event.Summary), logging.When(when.String()))
		return Selection{Candidate: first}, nil
	}
	return Selection{Candidate: first, Event: first}, nil
}

// firstCandidate stops at the first eligible event, later ones are never
// looked at.
func (s Selector) firstCandidate(it internal.Iterator) (*SelectedEvent, error) {
	var seen int
	for it.Next() {
		seen++
		event := it.Event()

		if event.Status != internal.Confirmed {
			s.logger.Info("Skipping as not confirmed", logging.Event(event.Summary), slog.String("status", event.Status.String()))
			continue
		}
		if event.Start.AllDay() {
			s.logger.Info("Skipping as all day event", logging.Event(event.Summary))
			continue
		}
		if !event.Start.Timed() {
			s.logger.Warn("Skipping event without start", logging.Event(event.Summary))
			continue
		}
		when, err := event.Start.Time()
		if err != nil {
			s.logger.Warn("Skipping event with invalid start", logging.Event(event.Summary), logging.Err(err))
			continue
		}
		return &SelectedEvent{Event: event, When: when}, nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("listing upcoming events: %w", err)
	}
	if seen == 0 {
		s.logger.Info("No upcoming events found")
	}
	return nil, nil
}

func (s Selector) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}
