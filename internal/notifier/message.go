package notifier

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/guilherme-santos/firstmeeting/internal"
)

const (
	timeLayout = "15:04 PM"
	dayLayout  = "Monday 02 Jan"
)

const bodyTemplate = `First meeting: %s
Day: %s
About: %s

This is a friendly reminder in case you are running or sleeping in.
`

// Message is the reminder sent for a selected event.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// NewMessage renders the reminder for ev with times shown in loc.
func NewMessage(from, to string, ev *internal.SelectedEvent, loc *time.Location) Message {
	when := ev.When.In(loc)
	return Message{
		From:    from,
		To:      to,
		Subject: "First meeting is at " + when.Format(timeLayout),
		Body:    fmt.Sprintf(bodyTemplate, when.Format(timeLayout), when.Format(dayLayout), ev.Event.Summary),
	}
}

// Encode returns m as a plain text RFC 822 message. From and To may carry a
// display name, as in "Andy <andy@example.com>".
func (m Message) Encode(date time.Time) ([]byte, error) {
	from, err := mail.ParseAddress(m.From)
	if err != nil {
		return nil, fmt.Errorf("parsing sender %q: %w", m.From, err)
	}
	to, err := mail.ParseAddress(m.To)
	if err != nil {
		return nil, fmt.Errorf("parsing recipient %q: %w", m.To, err)
	}

	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", []*mail.Address{to})
	h.SetSubject(m.Subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generating message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, m.Body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
