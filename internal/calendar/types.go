package calendar

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInterval = errors.New("event start must be before end")
	// ErrRemoteRejected signals that the remote calendar refused or could not
	// perform an insertion. The cause (conflict, transient failure) is not
	// distinguished by the remote API in a way we can rely on.
	ErrRemoteRejected = errors.New("remote calendar rejected the event")
)

// Event is a busy interval sourced from a remote calendar. Summary and
// CalendarID are retained for display only; merging considers the interval.
type Event struct {
	Start      time.Time
	End        time.Time
	Summary    string
	CalendarID string
	Kind       Kind
}

// Validate rejects inverted or zero-length intervals.
func (e Event) Validate() error {
	if !e.Start.Before(e.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Kind is a coarse display classification of a calendar.
type Kind string

const (
	KindWork     Kind = "work"
	KindPersonal Kind = "personal"
)

// EventInput is the payload for creating a calendar event.
type EventInput struct {
	Summary   string
	Start     time.Time
	End       time.Time
	TimeZone  string
	Attendees []string
}

// CreatedEvent describes an event the remote calendar committed.
type CreatedEvent struct {
	ID       string
	Summary  string
	Start    time.Time
	End      time.Time
	HTMLLink string
}

// EventFetcher lists upcoming busy intervals for a calendar. The remote side
// bounds the volume; callers do not paginate. A fetch failure is an error,
// never an empty result.
type EventFetcher interface {
	ListEvents(ctx context.Context, calendarID string) ([]Event, error)
}

// EventCreator inserts an event into a calendar. Implementations return
// ErrRemoteRejected (possibly wrapped) when the remote side refuses.
type EventCreator interface {
	CreateEvent(ctx context.Context, calendarID string, input EventInput) (*CreatedEvent, error)
}

// Client is a full calendar collaborator: it can both list and create events.
type Client interface {
	EventFetcher
	EventCreator
}
