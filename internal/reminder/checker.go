// Package reminder runs one check: find the next meeting and mail a reminder
// when it is today.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/guilherme-santos/firstmeeting/internal"
	"github.com/guilherme-santos/firstmeeting/internal/logging"
	"github.com/guilherme-santos/firstmeeting/internal/notifier"
	"github.com/guilherme-santos/firstmeeting/internal/selector"
)

type Outcome string

func (o Outcome) String() string {
	return string(o)
}

const (
	NoEvent     Outcome = "no-event"
	NotToday    Outcome = "not-today"
	AlreadySent Outcome = "already-sent"
	Sent        Outcome = "sent"
	SendFailed  Outcome = "send-failed"
)

// History remembers the events a reminder went out for.
type History interface {
	WasReminded(context.Context, *internal.Calendar, *internal.SelectedEvent) (bool, error)
	SaveReminder(_ context.Context, _ *internal.Calendar, _ *internal.SelectedEvent, messageID string, sentAt time.Time) error
}

type Checker struct {
	logger   *slog.Logger
	cal      *internal.Calendar
	selector *selector.Selector
	notifier *notifier.Notifier

	SameDay bool
	// Timeout bounds each network step, unbounded when zero.
	Timeout time.Duration
	// History is optional.
	History History
}

func NewChecker(logger *slog.Logger, cal *internal.Calendar, s *selector.Selector, n *notifier.Notifier) *Checker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Checker{
		logger:   logging.WithOperation(logger, "check"),
		cal:      cal,
		selector: s,
		notifier: n,
		SameDay:  true,
	}
}

// Run looks for the next event and mails a reminder when there is one today.
// Only a calendar failure is returned as an error; a reminder that could not
// be sent is reported as SendFailed.
func (c Checker) Run(ctx context.Context, cred internal.Credential, now time.Time) (Outcome, error) {
	sel, err := c.selectEvent(ctx, cred, now)
	if err != nil {
		return "", err
	}
	switch {
	case sel.Candidate == nil:
		return NoEvent, nil
	case sel.Event == nil:
		return NotToday, nil
	}

	ev := sel.Event
	if c.History != nil {
		reminded, err := c.History.WasReminded(ctx, c.cal, ev)
		if err != nil {
			c.logger.Warn("Unable to read reminder history", logging.Err(err))
		} else if reminded {
			c.logger.Info("Reminder already sent", logging.Event(ev.Event.Summary))
			return AlreadySent, nil
		}
	}

	c.logger.Info("Got event, emailing", logging.Event(ev.Event.Summary), logging.When(ev.When.Format(time.RFC3339)))
	res := c.send(ctx, cred, ev)
	if !res.OK() {
		return SendFailed, nil
	}

	if c.History != nil {
		if err := c.History.SaveReminder(ctx, c.cal, ev, res.MessageID, now); err != nil {
			c.logger.Warn("Unable to save reminder history", logging.Err(err))
		}
	}
	return Sent, nil
}

func (c Checker) selectEvent(ctx context.Context, cred internal.Credential, now time.Time) (selector.Selection, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.selector.Next(ctx, cred, now, c.SameDay)
}

func (c Checker) send(ctx context.Context, cred internal.Credential, ev *internal.SelectedEvent) notifier.Result {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.notifier.Send(ctx, cred, ev)
}

func (c Checker) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}
