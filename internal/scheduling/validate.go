package scheduling

import (
	"github.com/nimblecal/meeting-booking-backend/internal/availability"
)

// Authorize reports whether the request fits entirely inside one of the free
// slots on the day the request starts. A request is checked only against its
// start day's slots; one spanning midnight cannot be authorized. Pure
// function, no side effects.
func Authorize(req BookingRequest, free FreeSlotMap) bool {
	if req.Validate() != nil {
		return false
	}

	day := availability.WeekdayOf(req.Start)
	for _, slot := range free[day] {
		if slot.Contains(req.Start, req.End) {
			return true
		}
	}
	return false
}
