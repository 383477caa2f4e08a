package availability

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/pkg/apperror"
)

var (
	ErrInvalidWallClock = apperror.New(http.StatusBadRequest, "invalid wall-clock time, expected HH:MM")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, "day window start must be before end")
)

// WallClock is a time of day without a date, e.g. 08:00.
type WallClock struct {
	Hour   int
	Minute int
}

// ParseWallClock parses "HH:MM" (or "HH:MM:SS", seconds ignored).
func ParseWallClock(s string) (WallClock, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return WallClock{}, ErrInvalidWallClock
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return WallClock{}, ErrInvalidWallClock
	}
	return WallClock{Hour: h, Minute: m}, nil
}

// String formats the time as "HH:MM".
func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// At combines the wall-clock time with the date portion of t.
func (w WallClock) At(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), w.Hour, w.Minute, 0, 0, t.Location())
}

// Before reports whether w is earlier in the day than other.
func (w WallClock) Before(other WallClock) bool {
	if w.Hour != other.Hour {
		return w.Hour < other.Hour
	}
	return w.Minute < other.Minute
}

// DayWindow is the bookable window for a single weekday. Both bounds nil
// means the day is unavailable. A window with exactly one bound set is
// malformed and treated as unavailable rather than rejected, so a bad
// stored template degrades to zero capacity instead of failing requests.
type DayWindow struct {
	Start *WallClock
	End   *WallClock
}

// Open reports whether the day has a usable booking window.
func (w DayWindow) Open() bool {
	return w.Start != nil && w.End != nil
}

// Validate checks that a fully specified window is ordered. Windows with
// zero or one bound are permitted (they mean "unavailable").
func (w DayWindow) Validate() error {
	if w.Open() && !w.Start.Before(*w.End) {
		return ErrInvalidWindow
	}
	return nil
}

// Template holds one DayWindow per weekday.
type Template struct {
	days [7]DayWindow
}

// DefaultTemplate returns the template assigned to new users:
// weekdays 08:00-17:30, weekend unavailable.
func DefaultTemplate() Template {
	start := WallClock{Hour: 8}
	end := WallClock{Hour: 17, Minute: 30}

	var t Template
	for _, d := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday} {
		s, e := start, end
		t.days[d] = DayWindow{Start: &s, End: &e}
	}
	return t
}

// Day returns the window for the given weekday.
func (t Template) Day(d Weekday) DayWindow {
	return t.days[d]
}

// SetDay replaces the window for the given weekday.
func (t *Template) SetDay(d Weekday, w DayWindow) {
	t.days[d] = w
}

// Validate checks every day window.
func (t Template) Validate() error {
	for _, d := range Weekdays {
		if err := t.days[d].Validate(); err != nil {
			return fmt.Errorf("%s: %w", d, err)
		}
	}
	return nil
}

// dayWindowJSON is the stored shape of a single day,
// e.g. {"start": "08:00", "end": "17:30"} or {"start": null, "end": null}.
type dayWindowJSON struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// MarshalJSON encodes the template as a day-name keyed object, matching the
// shape of the availability column.
func (t Template) MarshalJSON() ([]byte, error) {
	out := make(map[string]dayWindowJSON, 7)
	for _, d := range Weekdays {
		w := t.days[d]
		var j dayWindowJSON
		if w.Start != nil {
			s := w.Start.String()
			j.Start = &s
		}
		if w.End != nil {
			e := w.End.String()
			j.End = &e
		}
		out[d.String()] = j
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the stored day-name keyed object. Unknown day names
// are rejected; missing days stay unavailable.
func (t *Template) UnmarshalJSON(data []byte) error {
	var raw map[string]dayWindowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var parsed Template
	for name, j := range raw {
		d, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		var w DayWindow
		if j.Start != nil {
			wc, err := ParseWallClock(*j.Start)
			if err != nil {
				return fmt.Errorf("%s start: %w", name, err)
			}
			w.Start = &wc
		}
		if j.End != nil {
			wc, err := ParseWallClock(*j.End)
			if err != nil {
				return fmt.Errorf("%s end: %w", name, err)
			}
			w.End = &wc
		}
		parsed.days[d] = w
	}

	*t = parsed
	return nil
}
