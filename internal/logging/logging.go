// Package logging configures the slog logger used by the command and provides
// helpers so that attributes are named the same way everywhere.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Common log attribute keys.
const (
	KeyOperation = "operation"
	KeyCalendar  = "calendar"
	KeyEvent     = "event"
	KeyWhen      = "when"
	KeyStrategy  = "strategy"
	KeyError     = "error"
)

// New returns a text logger writing to w (stderr when nil).
func New(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

func Calendar(id string) slog.Attr {
	return slog.String(KeyCalendar, id)
}

// Event returns an attribute holding the event summary.
func Event(summary string) slog.Attr {
	return slog.String(KeyEvent, summary)
}

func When(v string) slog.Attr {
	return slog.String(KeyWhen, v)
}

func Strategy(name string) slog.Attr {
	return slog.String(KeyStrategy, name)
}

// Err returns an attribute for err. A nil err yields an empty group, which
// slog omits from the output.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
