package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/guilherme-santos/firstmeeting/internal"
)

const DriverName = "sqlite3"

// Storage remembers which events a reminder was already sent for.
type Storage struct {
	db *sqlx.DB
}

func Open(filename string) (*Storage, error) {
	db, err := sql.Open(DriverName, filename)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", filename, err)
	}
	s, err := NewStorage(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStorage wraps db and brings its schema up to date.
func NewStorage(db *sql.DB) (*Storage, error) {
	s := &Storage{
		db: sqlx.NewDb(db, DriverName),
	}
	if err := s.RunMigrations(); err != nil {
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return s, nil
}

func (s Storage) Close() error {
	return s.db.Close()
}

func (s Storage) WasReminded(ctx context.Context, cal *internal.Calendar, ev *internal.SelectedEvent) (bool, error) {
	var sentAt string
	err := s.db.GetContext(ctx, &sentAt, `
		SELECT sent_at
		FROM reminders
		WHERE calendar_id = ? AND event_id = ? AND starts_at = ?
	`, cal.String(), ev.Event.ID, formatTime(ev.When))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s Storage) SaveReminder(ctx context.Context, cal *internal.Calendar, ev *internal.SelectedEvent, messageID string, sentAt time.Time) error {
	r := newReminder(cal, ev, messageID, sentAt)
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO reminders (calendar_id, event_id, starts_at, summary, message_id, sent_at)
		VALUES (:calendar_id, :event_id, :starts_at, :summary, :message_id, :sent_at)
		ON CONFLICT(calendar_id, event_id, starts_at) DO UPDATE
			SET message_id = :message_id, sent_at = :sent_at;
	`, r)
	return err
}

func (s Storage) Reminders(ctx context.Context) ([]Reminder, error) {
	var rs []Reminder
	err := s.db.SelectContext(ctx, &rs, `
		SELECT calendar_id, event_id, starts_at, summary, message_id, sent_at
		FROM reminders
		ORDER BY sent_at
	`)
	return rs, err
}
