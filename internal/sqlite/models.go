package sqlite

import (
	"time"

	"github.com/guilherme-santos/firstmeeting/internal"
)

type Reminder struct {
	CalendarID string `db:"calendar_id"`
	EventID    string `db:"event_id"`
	StartsAt   string `db:"starts_at"`
	Summary    string
	MessageID  string `db:"message_id"`
	SentAt     string `db:"sent_at"`
}

func newReminder(cal *internal.Calendar, ev *internal.SelectedEvent, messageID string, sentAt time.Time) Reminder {
	return Reminder{
		CalendarID: cal.String(),
		EventID:    ev.Event.ID,
		StartsAt:   formatTime(ev.When),
		Summary:    ev.Event.Summary,
		MessageID:  messageID,
		SentAt:     formatTime(sentAt),
	}
}

// formatTime stores instants in UTC so the same start always maps to the
// same key, whatever offset the provider reported it with.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
