package booking

import (
	"net/http"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/pkg/apperror"
)

// defaultMessage is the user-facing text for both a full slot and a remote
// calendar failure. The two outcomes stay distinguishable by error kind and
// HTTP status, but share this message.
const defaultMessage = "the selected time slot is not available or there was an error creating the event"

var (
	ErrSlotUnavailable  = apperror.New(http.StatusConflict, defaultMessage)
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrTargetUnknown    = apperror.New(http.StatusInternalServerError, "target calendar owner is not registered")
)

// CalendarUnavailable wraps a collaborator failure (fetch or insert) so the
// caller can tell "no time available" apart from "calendar system error".
func CalendarUnavailable(cause error) *apperror.AppError {
	return apperror.Wrap(cause, http.StatusBadGateway, defaultMessage)
}

// CreateRequest is a proposed booking against the target calendar.
type CreateRequest struct {
	Summary   string
	Start     time.Time
	End       time.Time
	Attendees []string
}

// Confirmation is a booking the remote calendar committed.
type Confirmation struct {
	EventID   string
	Summary   string
	Start     time.Time
	End       time.Time
	HTMLLink  string
	Attendees []string
}

// EventsOverview lists upcoming events on the booker's own calendar and on
// the target calendar, for display.
type EventsOverview struct {
	Mine   []EventView
	Target []EventView
}

// EventView is a calendar event prepared for display.
type EventView struct {
	Summary    string
	Start      time.Time
	End        time.Time
	CalendarID string
	Kind       string
}
