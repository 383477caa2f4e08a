package availability

import (
	"fmt"
	"time"
)

// Weekday is a closed enumeration of the days of the week, Monday first.
// It replaces free-form day-name strings so that template lookups can be
// handled exhaustively and without casing bugs.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays lists all days in template order (Monday..Sunday).
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// String returns the lowercase English day name. This is also the key used
// in the stored JSON representation of a template.
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday parses a lowercase English day name.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if s == name {
			return Weekday(i), nil
		}
	}
	return Monday, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayOf returns the Weekday for the given time.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Offset returns the number of days from Monday (0 for Monday, 6 for Sunday).
func (d Weekday) Offset() int {
	return int(d)
}
