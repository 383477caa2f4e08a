package http

import (
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/booking"
	"github.com/nimblecal/meeting-booking-backend/internal/scheduling"
)

// CreateBookingRequest defines the payload for creating a booking.
type CreateBookingRequest struct {
	Summary   string    `json:"summary" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Attendees []string  `json:"attendees" binding:"omitempty,dive,email"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

// BookingResponse is the committed booking returned to the caller.
type BookingResponse struct {
	EventID   string    `json:"event_id"`
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	HTMLLink  string    `json:"html_link,omitempty"`
	Attendees []string  `json:"attendees"`
}

func NewBookingResponse(c *booking.Confirmation) BookingResponse {
	return BookingResponse{
		EventID:   c.EventID,
		Summary:   c.Summary,
		StartTime: c.Start,
		EndTime:   c.End,
		HTMLLink:  c.HTMLLink,
		Attendees: c.Attendees,
	}
}

// TimeSlotResponse is a single free window.
type TimeSlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// FreeSlotsResponse maps lowercase day names to their free windows.
type FreeSlotsResponse struct {
	FreeSlots map[string][]TimeSlotResponse `json:"free_slots"`
}

func NewFreeSlotsResponse(free scheduling.FreeSlotMap) FreeSlotsResponse {
	out := make(map[string][]TimeSlotResponse, len(free))
	for day, slots := range free {
		views := make([]TimeSlotResponse, 0, len(slots))
		for _, s := range slots {
			views = append(views, TimeSlotResponse{StartTime: s.Start, EndTime: s.End})
		}
		out[day.String()] = views
	}
	return FreeSlotsResponse{FreeSlots: out}
}

// EventResponse is a calendar event prepared for display.
type EventResponse struct {
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Calendar  string    `json:"calendar"`
	Kind      string    `json:"kind"`
}

// EventsResponse lists the booker's and the target's upcoming events.
type EventsResponse struct {
	Mine   []EventResponse `json:"mine"`
	Target []EventResponse `json:"target"`
}

func NewEventsResponse(o *booking.EventsOverview) EventsResponse {
	return EventsResponse{
		Mine:   toEventResponses(o.Mine),
		Target: toEventResponses(o.Target),
	}
}

func toEventResponses(events []booking.EventView) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			Summary:   e.Summary,
			StartTime: e.Start,
			EndTime:   e.End,
			Calendar:  e.CalendarID,
			Kind:      e.Kind,
		})
	}
	return out
}
