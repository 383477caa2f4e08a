package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/availability"
	"github.com/nimblecal/meeting-booking-backend/internal/calendar"
	"github.com/nimblecal/meeting-booking-backend/internal/scheduling"
	"github.com/nimblecal/meeting-booking-backend/internal/user"
)

// ClientFactory builds a calendar client acting with the given user token.
type ClientFactory interface {
	ClientFor(ctx context.Context, token calendar.UserToken) (calendar.Client, error)
}

// Service orchestrates the booking pipeline: fetch the target calendar's
// events, compute free slots against the target's availability template,
// validate the request, and only then commit the event remotely.
type Service interface {
	// FreeSlots computes the target calendar's free windows for the current week.
	FreeSlots(ctx context.Context, userID string) (scheduling.FreeSlotMap, error)
	// Book validates the request against the target's free slots and creates
	// the event when it fits. The event creator is never called for a
	// rejected request.
	Book(ctx context.Context, userID string, req CreateRequest) (*Confirmation, error)
	// Events lists upcoming events on the booker's and the target's calendars.
	Events(ctx context.Context, userID string) (*EventsOverview, error)
}

// Config carries the fixed booking target and event defaults.
type Config struct {
	// TargetEmail is the calendar owner meetings are booked with.
	TargetEmail string
	// TimeZone is attached to created events.
	TimeZone string
}

type service struct {
	users     user.Service
	templates availability.Store
	clients   ClientFactory
	cfg       Config

	now func() time.Time
}

// NewService creates a new booking Service.
func NewService(users user.Service, templates availability.Store, clients ClientFactory, cfg Config) Service {
	return &service{
		users:     users,
		templates: templates,
		clients:   clients,
		cfg:       cfg,
		now:       time.Now,
	}
}

// clientFor loads the booker and builds a calendar client from their stored
// OAuth token.
func (s *service) clientFor(ctx context.Context, userID string) (*user.User, calendar.Client, error) {
	booker, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.clients.ClientFor(ctx, booker.CalendarToken())
	if err != nil {
		return nil, nil, CalendarUnavailable(err)
	}
	return booker, client, nil
}

// targetFreeSlots fetches the target's events and template and computes the
// free slots for the week containing now.
func (s *service) targetFreeSlots(ctx context.Context, client calendar.Client) (scheduling.FreeSlotMap, *user.User, error) {
	target, err := s.users.GetByEmail(ctx, s.cfg.TargetEmail)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, ErrTargetUnknown
		}
		return nil, nil, err
	}

	events, err := client.ListEvents(ctx, target.Email)
	if err != nil {
		return nil, nil, CalendarUnavailable(err)
	}

	tpl, err := s.templates.Get(ctx, target.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load target availability: %w", err)
	}

	free, err := scheduling.ComputeFreeSlots(events, tpl, scheduling.WeekStart(s.now()))
	if err != nil {
		return nil, nil, err
	}
	return free, target, nil
}

func (s *service) FreeSlots(ctx context.Context, userID string) (scheduling.FreeSlotMap, error) {
	_, client, err := s.clientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	free, _, err := s.targetFreeSlots(ctx, client)
	return free, err
}

func (s *service) Book(ctx context.Context, userID string, req CreateRequest) (*Confirmation, error) {
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidTimeRange
	}

	booker, client, err := s.clientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	free, target, err := s.targetFreeSlots(ctx, client)
	if err != nil {
		return nil, err
	}

	proposal := scheduling.BookingRequest{
		Summary:   req.Summary,
		Start:     req.Start,
		End:       req.End,
		Attendees: req.Attendees,
	}
	if !scheduling.Authorize(proposal, free) {
		return nil, ErrSlotUnavailable
	}

	attendees := mergeAttendees(req.Attendees, booker.Email, target.Email)

	created, err := client.CreateEvent(ctx, "primary", calendar.EventInput{
		Summary:   req.Summary,
		Start:     req.Start,
		End:       req.End,
		TimeZone:  s.cfg.TimeZone,
		Attendees: attendees,
	})
	if err != nil {
		log.Printf("booking: event creation failed for user %s: %v", userID, err)
		return nil, CalendarUnavailable(err)
	}

	return &Confirmation{
		EventID:   created.ID,
		Summary:   created.Summary,
		Start:     req.Start,
		End:       req.End,
		HTMLLink:  created.HTMLLink,
		Attendees: attendees,
	}, nil
}

func (s *service) Events(ctx context.Context, userID string) (*EventsOverview, error) {
	_, client, err := s.clientFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	mine, err := client.ListEvents(ctx, "primary")
	if err != nil {
		return nil, CalendarUnavailable(err)
	}

	targetEvents, err := client.ListEvents(ctx, s.cfg.TargetEmail)
	if err != nil {
		return nil, CalendarUnavailable(err)
	}

	return &EventsOverview{
		Mine:   toEventViews(mine),
		Target: toEventViews(targetEvents),
	}, nil
}

// mergeAttendees appends the booker and target emails to the requested
// attendees, dropping duplicates while preserving order.
func mergeAttendees(requested []string, booker, target string) []string {
	seen := make(map[string]bool, len(requested)+2)
	var out []string
	for _, email := range append(append([]string{}, requested...), booker, target) {
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out
}

func toEventViews(events []calendar.Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Summary:    e.Summary,
			Start:      e.Start,
			End:        e.End,
			CalendarID: e.CalendarID,
			Kind:       string(e.Kind),
		})
	}
	return views
}
