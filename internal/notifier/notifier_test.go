package notifier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/firstmeeting/internal"
	"github.com/guilherme-santos/firstmeeting/internal/fake"
)

var standup = &internal.SelectedEvent{
	Event: &internal.Event{
		ID:      "standup",
		Status:  internal.Confirmed,
		Summary: "Standup",
		Start:   internal.EventStart{DateTime: "2026-10-16T14:30:00Z"},
	},
	When: time.Date(2026, time.October, 16, 14, 30, 0, 0, time.UTC),
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("me@example.com", "you@example.com", standup, time.UTC)

	assert.Equal(t, "me@example.com", msg.From)
	assert.Equal(t, "you@example.com", msg.To)
	assert.Equal(t, "First meeting is at 14:30 PM", msg.Subject)
	assert.Equal(t, `First meeting: 14:30 PM
Day: Friday 16 Oct
About: Standup

This is a friendly reminder in case you are running or sleeping in.
`, msg.Body)
}

func TestNewMessageLocation(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	msg := NewMessage("me@example.com", "you@example.com", standup, berlin)
	assert.Equal(t, "First meeting is at 16:30 PM", msg.Subject)
}

func readMessage(t *testing.T, raw []byte) (*mail.Header, string) {
	t.Helper()

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer mr.Close()

	p, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(p.Body)
	require.NoError(t, err)
	// quoted-printable turns line breaks into CRLF.
	return &mr.Header, strings.ReplaceAll(string(body), "\r\n", "\n")
}

func TestEncode(t *testing.T) {
	msg := Message{
		From:    "me@example.com",
		To:      "you@example.com",
		Subject: "First meeting is at 14:30 PM",
		Body:    "About: Café ☕\n",
	}
	date := time.Date(2026, time.October, 16, 7, 0, 0, 0, time.UTC)

	raw, err := msg.Encode(date)
	require.NoError(t, err)

	h, body := readMessage(t, raw)

	subject, err := h.Subject()
	require.NoError(t, err)
	assert.Equal(t, msg.Subject, subject)

	from, err := h.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "me@example.com", from[0].Address)

	to, err := h.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "you@example.com", to[0].Address)

	got, err := h.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(got))

	id, err := h.MessageID()
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	assert.Equal(t, msg.Body, body)
}

func TestEncodeDisplayNames(t *testing.T) {
	msg := Message{
		From:    "Andy <andy@example.com>",
		To:      `"McKay, Andy" <you@example.com>`,
		Subject: "First meeting is at 09:15 AM",
		Body:    "hi\n",
	}

	raw, err := msg.Encode(time.Date(2026, time.October, 16, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	h, _ := readMessage(t, raw)

	from, err := h.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "Andy", from[0].Name)
	assert.Equal(t, "andy@example.com", from[0].Address)

	to, err := h.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "McKay, Andy", to[0].Name)
	assert.Equal(t, "you@example.com", to[0].Address)
}

func TestEncodeInvalidAddress(t *testing.T) {
	msg := Message{From: "me@example.com", To: "not an address", Subject: "s", Body: "b"}

	_, err := msg.Encode(time.Now())
	assert.ErrorContains(t, err, "recipient")
}

func TestMorningMeetingShowsAM(t *testing.T) {
	early := &internal.SelectedEvent{
		Event: standup.Event,
		When:  time.Date(2026, time.October, 16, 9, 15, 0, 0, time.UTC),
	}

	msg := NewMessage("me@example.com", "you@example.com", early, time.UTC)
	assert.Equal(t, "First meeting is at 09:15 AM", msg.Subject)
}

func TestSend(t *testing.T) {
	mailer := &fake.Mailer{}
	n := New(nil, mailer, "me@example.com", "you@example.com")
	n.Location = time.UTC

	res := n.Send(context.Background(), fake.Credential{}, standup)
	require.True(t, res.OK())
	assert.Equal(t, "fake-id", res.MessageID)

	require.Len(t, mailer.Sent, 1)
	h, body := readMessage(t, mailer.Sent[0])

	subject, err := h.Subject()
	require.NoError(t, err)
	assert.Contains(t, subject, "14:30")
	assert.Contains(t, body, "Standup")
}

func TestSendFailureIsReported(t *testing.T) {
	mailer := &fake.Mailer{Err: errors.New("quota exceeded")}
	n := New(nil, mailer, "me@example.com", "you@example.com")

	res := n.Send(context.Background(), fake.Credential{}, standup)
	assert.False(t, res.OK())
	assert.EqualError(t, res.Err, "quota exceeded")
	assert.Empty(t, res.MessageID)
}
