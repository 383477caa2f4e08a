package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// OAuthConfig holds the Google OAuth application credentials. It is passed
// in explicitly; nothing in this package reads process-wide state.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (c OAuthConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarScope},
	}
}

// UserToken is the stored OAuth token of the user on whose behalf calls are
// made.
type UserToken struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Options tunes the Google client.
type Options struct {
	// MaxResults bounds how many upcoming events a single list call returns.
	MaxResults int64
	// Timeout applies per remote call.
	Timeout time.Duration
}

const (
	defaultMaxResults = 10
	defaultTimeout    = 10 * time.Second
)

// GoogleClientFactory builds per-user Google calendar clients from one set
// of application OAuth credentials.
type GoogleClientFactory struct {
	cfg  OAuthConfig
	opts Options
}

// NewGoogleClientFactory creates a factory with explicit credentials.
func NewGoogleClientFactory(cfg OAuthConfig, opts Options) *GoogleClientFactory {
	return &GoogleClientFactory{cfg: cfg, opts: opts}
}

// ClientFor builds a client acting with the given user token.
func (f *GoogleClientFactory) ClientFor(ctx context.Context, token UserToken) (Client, error) {
	return NewGoogleClient(ctx, f.cfg, token, f.opts)
}

// GoogleClient implements EventFetcher and EventCreator against the Google
// Calendar API using the user's OAuth token.
type GoogleClient struct {
	svc        *gcal.Service
	maxResults int64
	timeout    time.Duration
	now        func() time.Time
}

// NewGoogleClient builds a calendar client for one user's credentials.
func NewGoogleClient(ctx context.Context, cfg OAuthConfig, token UserToken, opts Options) (*GoogleClient, error) {
	source := cfg.oauth2Config().TokenSource(ctx, &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	})

	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &GoogleClient{
		svc:        svc,
		maxResults: opts.MaxResults,
		timeout:    opts.Timeout,
		now:        time.Now,
	}, nil
}

// ListEvents returns upcoming events for the calendar, ordered by start.
func (c *GoogleClient) ListEvents(ctx context.Context, calendarID string) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.svc.Events.List(calendarID).
		MaxResults(c.maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(c.now().Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", calendarID, err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		e, ok := toEvent(item, calendarID)
		if !ok {
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

// CreateEvent inserts the event into the calendar and notifies attendees.
func (c *GoogleClient) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*CreatedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event := &gcal.Event{
		Summary: input.Summary,
		Start: &gcal.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &gcal.EventAttendee{Email: email})
	}

	created, err := c.svc.Events.Insert(calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteRejected, err)
	}

	out := &CreatedEvent{
		ID:       created.Id,
		Summary:  created.Summary,
		HTMLLink: created.HtmlLink,
	}
	if created.Start != nil {
		out.Start, _ = parseEventTime(created.Start)
	}
	if created.End != nil {
		out.End, _ = parseEventTime(created.End)
	}
	return out, nil
}

// toEvent converts an API event to the domain shape. Events without usable
// start or end times are skipped.
func toEvent(item *gcal.Event, calendarID string) (Event, bool) {
	start, ok := parseEventTime(item.Start)
	if !ok {
		return Event{}, false
	}
	end, ok := parseEventTime(item.End)
	if !ok {
		return Event{}, false
	}

	return Event{
		Start:      start,
		End:        end,
		Summary:    item.Summary,
		CalendarID: calendarID,
		Kind:       kindOf(calendarID),
	}, true
}

// parseEventTime reads either a timed (dateTime) or all-day (date) bound.
func parseEventTime(edt *gcal.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if edt.Date != "" {
		t, err := time.Parse("2006-01-02", edt.Date)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

func kindOf(calendarID string) Kind {
	if strings.Contains(strings.ToLower(calendarID), "work") {
		return KindWork
	}
	return KindPersonal
}
