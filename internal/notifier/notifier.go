package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guilherme-santos/firstmeeting/internal"
	"github.com/guilherme-santos/firstmeeting/internal/logging"
)

// Result tells whether the reminder went out. Err is set when it did not.
type Result struct {
	MessageID string
	Err       error
}

func (r Result) OK() bool {
	return r.Err == nil
}

type Notifier struct {
	logger *slog.Logger
	mailer internal.Mailer

	From string
	To   string
	// Location is used to render the event time, time.Local when nil.
	Location *time.Location

	now func() time.Time
}

func New(logger *slog.Logger, mailer internal.Mailer, from, to string) *Notifier {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Notifier{
		logger: logging.WithOperation(logger, "notify"),
		mailer: mailer,
		From:   from,
		To:     to,
		now:    time.Now,
	}
}

// Send mails the reminder for ev. Failures are reported in the Result and
// never returned as an error, a reminder that could not be sent does not fail
// the run.
func (n Notifier) Send(ctx context.Context, cred internal.Credential, ev *internal.SelectedEvent) Result {
	msg := NewMessage(n.From, n.To, ev, n.location())

	raw, err := msg.Encode(n.now())
	if err != nil {
		return n.failed(fmt.Errorf("encoding message: %w", err))
	}

	id, err := n.mailer.Send(ctx, cred.Client(ctx), raw)
	if err != nil {
		return n.failed(err)
	}
	n.logger.Info("Mail sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return Result{MessageID: id}
}

func (n Notifier) failed(err error) Result {
	n.logger.Error("An error occurred while sending the reminder", logging.Err(err))
	return Result{Err: err}
}

func (n Notifier) location() *time.Location {
	if n.Location != nil {
		return n.Location
	}
	return time.Local
}
