package booking

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimblecal/meeting-booking-backend/internal/availability"
	"github.com/nimblecal/meeting-booking-backend/internal/calendar"
	"github.com/nimblecal/meeting-booking-backend/internal/pkg/apperror"
	"github.com/nimblecal/meeting-booking-backend/internal/user"
)

const (
	bookerID    = "c2b7f3e0-0000-0000-0000-000000000001"
	targetID    = "c2b7f3e0-0000-0000-0000-000000000002"
	bookerEmail = "booker@example.com"
	targetEmail = "owner@example.com"
)

// Wednesday of the week starting Monday 2026-02-02.
var testNow = time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 2, 2, hour, min, 0, 0, time.UTC)
}

type userServiceStub struct {
	byID    map[string]*user.User
	byEmail map[string]*user.User
}

func newUserServiceStub() *userServiceStub {
	token := "stored-access-token"
	booker := &user.User{ID: bookerID, Email: bookerEmail, AccessToken: &token, IsActive: true}
	target := &user.User{ID: targetID, Email: targetEmail, IsActive: true}
	return &userServiceStub{
		byID:    map[string]*user.User{bookerID: booker, targetID: target},
		byEmail: map[string]*user.User{bookerEmail: booker, targetEmail: target},
	}
}

func (s *userServiceStub) Register(ctx context.Context, email, password, displayName string) (*user.User, error) {
	return nil, errors.New("not supported in stub")
}

func (s *userServiceStub) Login(ctx context.Context, email, password string) (*user.User, error) {
	return nil, errors.New("not supported in stub")
}

func (s *userServiceStub) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *userServiceStub) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *userServiceStub) LinkCalendarAccount(ctx context.Context, id string, tokens user.OAuthTokens) error {
	return nil
}

type templateStoreStub struct {
	tpl availability.Template
	err error
}

func (s *templateStoreStub) Get(ctx context.Context, userID string) (availability.Template, error) {
	return s.tpl, s.err
}

func (s *templateStoreStub) Update(ctx context.Context, userID string, t availability.Template) error {
	return errors.New("not supported in stub")
}

type calendarClientStub struct {
	events    []calendar.Event
	listErr   error
	created   *calendar.CreatedEvent
	createErr error

	createCalls []calendar.EventInput
}

func (c *calendarClientStub) ListEvents(ctx context.Context, calendarID string) ([]calendar.Event, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.events, nil
}

func (c *calendarClientStub) CreateEvent(ctx context.Context, calendarID string, input calendar.EventInput) (*calendar.CreatedEvent, error) {
	c.createCalls = append(c.createCalls, input)
	if c.createErr != nil {
		return nil, c.createErr
	}
	if c.created != nil {
		return c.created, nil
	}
	return &calendar.CreatedEvent{ID: "evt-1", Summary: input.Summary}, nil
}

type factoryStub struct {
	client *calendarClientStub
	err    error
}

func (f *factoryStub) ClientFor(ctx context.Context, token calendar.UserToken) (calendar.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

func newTestService(client *calendarClientStub) Service {
	return newTestServiceWith(client, &templateStoreStub{tpl: availability.DefaultTemplate()}, nil)
}

func newTestServiceWith(client *calendarClientStub, store availability.Store, factoryErr error) Service {
	svc := NewService(
		newUserServiceStub(),
		store,
		&factoryStub{client: client, err: factoryErr},
		Config{TargetEmail: targetEmail, TimeZone: "Europe/Warsaw"},
	).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestBookAuthorizedCreatesEvent(t *testing.T) {
	client := &calendarClientStub{}
	svc := newTestService(client)

	confirmation, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary:   "Career chat",
		Start:     mondayAt(9, 0),
		End:       mondayAt(9, 30),
		Attendees: []string{"guest@example.com", targetEmail},
	})
	require.NoError(t, err)
	require.NotNil(t, confirmation)

	require.Len(t, client.createCalls, 1)
	input := client.createCalls[0]
	assert.Equal(t, "Career chat", input.Summary)
	assert.Equal(t, "Europe/Warsaw", input.TimeZone)
	// Booker and target are appended, duplicates removed, order preserved.
	assert.Equal(t, []string{"guest@example.com", targetEmail, bookerEmail}, input.Attendees)

	assert.Equal(t, "evt-1", confirmation.EventID)
	assert.Equal(t, mondayAt(9, 0), confirmation.Start)
}

func TestBookRejectedWhenSlotBusy(t *testing.T) {
	client := &calendarClientStub{
		events: []calendar.Event{
			{Start: mondayAt(9, 0), End: mondayAt(10, 0), Summary: "standup", CalendarID: targetEmail},
		},
	}
	svc := newTestService(client)

	_, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary: "Career chat",
		Start:   mondayAt(9, 0),
		End:     mondayAt(9, 30),
	})
	require.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	// The creator must never be called for a rejected request.
	assert.Empty(t, client.createCalls)
}

func TestBookRejectedOnWeekend(t *testing.T) {
	client := &calendarClientStub{}
	svc := newTestService(client)

	saturday := time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary: "Weekend sync",
		Start:   saturday,
		End:     saturday.Add(30 * time.Minute),
	})
	require.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, client.createCalls)
}

func TestBookInvalidTimeRange(t *testing.T) {
	client := &calendarClientStub{}
	svc := newTestService(client)

	_, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary: "Backwards",
		Start:   mondayAt(10, 0),
		End:     mondayAt(9, 0),
	})
	require.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Empty(t, client.createCalls)
}

func TestBookFetchFailureIsCalendarUnavailable(t *testing.T) {
	client := &calendarClientStub{listErr: errors.New("network down")}
	svc := newTestService(client)

	_, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary: "Career chat",
		Start:   mondayAt(9, 0),
		End:     mondayAt(9, 30),
	})
	require.Error(t, err)
	// Distinct from a full slot: bad gateway, and the cause stays wrapped.
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
	assert.ErrorContains(t, errors.Unwrap(err), "network down")
	assert.Empty(t, client.createCalls)
}

func TestBookCreateFailureIsCalendarUnavailable(t *testing.T) {
	client := &calendarClientStub{createErr: calendar.ErrRemoteRejected}
	svc := newTestService(client)

	_, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary: "Career chat",
		Start:   mondayAt(9, 0),
		End:     mondayAt(9, 30),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
}

func TestBookUnknownTarget(t *testing.T) {
	client := &calendarClientStub{}
	svc := NewService(
		&userServiceStub{
			byID: map[string]*user.User{bookerID: {ID: bookerID, Email: bookerEmail, IsActive: true}},
		},
		&templateStoreStub{tpl: availability.DefaultTemplate()},
		&factoryStub{client: client},
		Config{TargetEmail: targetEmail},
	).(*service)
	svc.now = func() time.Time { return testNow }

	_, err := svc.Book(context.Background(), bookerID, CreateRequest{
		Summary: "Career chat",
		Start:   mondayAt(9, 0),
		End:     mondayAt(9, 30),
	})
	require.ErrorIs(t, err, ErrTargetUnknown)
}

func TestFreeSlots(t *testing.T) {
	client := &calendarClientStub{
		events: []calendar.Event{
			{Start: mondayAt(10, 0), End: mondayAt(11, 0), Summary: "standup", CalendarID: targetEmail},
		},
	}
	svc := newTestService(client)

	free, err := svc.FreeSlots(context.Background(), bookerID)
	require.NoError(t, err)

	slots := free[availability.Monday]
	require.Len(t, slots, 2)
	assert.Equal(t, mondayAt(8, 0), slots[0].Start)
	assert.Equal(t, mondayAt(10, 0), slots[0].End)
	assert.Equal(t, mondayAt(11, 0), slots[1].Start)
	assert.Equal(t, mondayAt(17, 30), slots[1].End)
}

func TestFreeSlotsClientFactoryFailure(t *testing.T) {
	svc := newTestServiceWith(nil, &templateStoreStub{tpl: availability.DefaultTemplate()}, errors.New("no token"))

	_, err := svc.FreeSlots(context.Background(), bookerID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
}

func TestEvents(t *testing.T) {
	client := &calendarClientStub{
		events: []calendar.Event{
			{Start: mondayAt(10, 0), End: mondayAt(11, 0), Summary: "standup", CalendarID: "primary", Kind: calendar.KindPersonal},
		},
	}
	svc := newTestService(client)

	overview, err := svc.Events(context.Background(), bookerID)
	require.NoError(t, err)
	require.Len(t, overview.Mine, 1)
	require.Len(t, overview.Target, 1)
	assert.Equal(t, "standup", overview.Mine[0].Summary)
}

func TestMergeAttendees(t *testing.T) {
	got := mergeAttendees(
		[]string{"a@example.com", "b@example.com", "a@example.com"},
		"b@example.com",
		"c@example.com",
	)
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, got)

	got = mergeAttendees(nil, bookerEmail, targetEmail)
	assert.Equal(t, []string{bookerEmail, targetEmail}, got)
}
