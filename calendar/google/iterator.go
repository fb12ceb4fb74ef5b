package google

import (
	"google.golang.org/api/calendar/v3"

	"github.com/guilherme-santos/firstmeeting/internal"
)

type eventIterator struct {
	items   []*calendar.Event
	pos     int
	current *internal.Event
}

func newEventIterator(items []*calendar.Event) *eventIterator {
	return &eventIterator{items: items}
}

func (it *eventIterator) Next() bool {
	if it.pos >= len(it.items) {
		it.current = nil
		return false
	}
	it.current = newEvent(it.items[it.pos])
	it.pos++
	return true
}

func (it *eventIterator) Event() *internal.Event {
	if it.current == nil {
		panic("google: Event() called before Next()")
	}
	return it.current
}

// Err is always nil, the whole page is fetched before iterating.
func (it *eventIterator) Err() error {
	return nil
}

func newEvent(event *calendar.Event) *internal.Event {
	e := &internal.Event{
		ID:      event.Id,
		Status:  internal.Status(event.Status),
		Summary: event.Summary,
	}
	if event.Start != nil {
		e.Start = internal.EventStart{
			Date:     event.Start.Date,
			DateTime: event.Start.DateTime,
		}
	}
	return e
}
