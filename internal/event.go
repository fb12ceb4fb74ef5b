package internal

import "time"

// Event is a calendar entry as returned by a provider.
type Event struct {
	ID      string
	Status  Status
	Start   EventStart
	Summary string
}

// EventStart holds the start of an event exactly as the provider reported it.
// Date is set for all-day events, DateTime for events with a precise start.
type EventStart struct {
	Date     string
	DateTime string
}

func (s EventStart) AllDay() bool {
	return s.Date != ""
}

func (s EventStart) Timed() bool {
	return s.Date == "" && s.DateTime != ""
}

// Time parses DateTime. It must only be called for timed starts.
func (s EventStart) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, s.DateTime)
}

type Status string

func (s Status) String() string {
	return string(s)
}

var (
	Confirmed Status = "confirmed"
	Tentative Status = "tentative"
	Cancelled Status = "cancelled"
)

// SelectedEvent is the event chosen for a reminder, paired with its parsed start.
type SelectedEvent struct {
	Event *Event
	When  time.Time
}
