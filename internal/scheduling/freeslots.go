package scheduling

import (
	"sort"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/availability"
	"github.com/nimblecal/meeting-booking-backend/internal/calendar"
)

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	return midnight.AddDate(0, 0, -offset)
}

// ComputeFreeSlots merges busy events against the availability template and
// returns the free windows for each day of the week starting at weekStart.
//
// For each weekday the template window is resolved to absolute timestamps on
// that week's date. Events are anchored to a day by their start date only;
// within a day they are walked in order with a running cursor so overlapping
// and contained events collapse into a single busy span. Days whose template
// window is absent, half-specified or inverted contribute no slots.
//
// The returned slots are chronological, disjoint and positive-length, and
// cover exactly the template window minus the union of that day's events.
func ComputeFreeSlots(events []calendar.Event, tpl availability.Template, weekStart time.Time) (FreeSlotMap, error) {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	week := WeekStart(weekStart)
	free := make(FreeSlotMap)

	for _, day := range availability.Weekdays {
		window := tpl.Day(day)
		if !window.Open() {
			continue
		}

		date := week.AddDate(0, 0, day.Offset())
		availableStart := window.Start.At(date)
		availableEnd := window.End.At(date)
		if !availableStart.Before(availableEnd) {
			continue
		}

		dayEvents := eventsOn(events, date)
		if len(dayEvents) == 0 {
			free[day] = []TimeSlot{{Start: availableStart, End: availableEnd}}
			continue
		}

		sortEvents(dayEvents)

		var slots []TimeSlot
		previousEnd := availableStart
		for _, e := range dayEvents {
			gapEnd := e.Start
			if gapEnd.After(availableEnd) {
				gapEnd = availableEnd
			}
			if gapEnd.After(previousEnd) {
				slots = append(slots, TimeSlot{Start: previousEnd, End: gapEnd})
			}
			if e.End.After(previousEnd) {
				previousEnd = e.End
			}
		}
		if previousEnd.Before(availableEnd) {
			slots = append(slots, TimeSlot{Start: previousEnd, End: availableEnd})
		}

		if len(slots) > 0 {
			free[day] = slots
		}
	}

	return free, nil
}

// eventsOn selects events whose start falls on the given calendar date. An
// event spanning midnight stays anchored to its start date.
func eventsOn(events []calendar.Event, date time.Time) []calendar.Event {
	var out []calendar.Event
	for _, e := range events {
		start := e.Start.In(date.Location())
		if start.Year() == date.Year() && start.YearDay() == date.YearDay() {
			out = append(out, e)
		}
	}
	return out
}

// sortEvents orders by start ascending, ties broken by end ascending.
func sortEvents(events []calendar.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].End.Before(events[j].End)
		}
		return events[i].Start.Before(events[j].Start)
	})
}
