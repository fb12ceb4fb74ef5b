package internal

import "time"

// Calendar identifies a calendar on a given platform.
type Calendar struct {
	Platform   string
	ProviderID string
}

func (c Calendar) String() string {
	return c.Platform + "/" + c.ProviderID
}

// Query describes which upcoming events to list. Events are always returned
// expanded into single occurrences and ordered by start time.
type Query struct {
	From       time.Time
	MaxResults int64
}
