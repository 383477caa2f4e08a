package scheduling

import (
	"net/http"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/availability"
	"github.com/nimblecal/meeting-booking-backend/internal/pkg/apperror"
)

var ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")

// TimeSlot is an immutable half-open interval [Start, End).
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Validate rejects inverted or zero-length slots.
func (s TimeSlot) Validate() error {
	if !s.Start.Before(s.End) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Contains reports whether [start, end) fits entirely inside the slot.
// The request end may equal the slot end.
func (s TimeSlot) Contains(start, end time.Time) bool {
	return !start.Before(s.Start) && !end.After(s.End)
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// FreeSlotMap maps each weekday to its free slots in chronological order.
// Days with no free time have no entry. A FreeSlotMap is derived fresh from
// current events and the availability template on every query; it is never
// persisted or cached.
type FreeSlotMap map[availability.Weekday][]TimeSlot

// BookingRequest is a proposed meeting to validate against free slots.
type BookingRequest struct {
	Summary   string
	Start     time.Time
	End       time.Time
	Attendees []string
}

// Validate rejects inverted or zero-length requests.
func (r BookingRequest) Validate() error {
	if !r.Start.Before(r.End) {
		return ErrInvalidTimeRange
	}
	return nil
}
