package scheduling

import (
	"testing"
	"time"

	"github.com/nimblecal/meeting-booking-backend/internal/availability"
)

func TestAuthorize(t *testing.T) {
	free := FreeSlotMap{
		availability.Monday: {
			{Start: monday(8, 0), End: monday(10, 0)},
			{Start: monday(11, 0), End: monday(17, 30)},
		},
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "inside a slot",
			start: monday(9, 0),
			end:   monday(9, 30),
			want:  true,
		},
		{
			name:  "exactly filling a slot",
			start: monday(8, 0),
			end:   monday(10, 0),
			want:  true,
		},
		{
			name:  "end equal to slot end",
			start: monday(9, 30),
			end:   monday(10, 0),
			want:  true,
		},
		{
			name:  "spanning a gap boundary",
			start: monday(9, 30),
			end:   monday(10, 30),
			want:  false,
		},
		{
			name:  "inside the busy gap",
			start: monday(10, 15),
			end:   monday(10, 45),
			want:  false,
		},
		{
			name:  "start before the slot",
			start: monday(7, 30),
			end:   monday(9, 0),
			want:  false,
		},
		{
			name:  "day with no slots",
			start: time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC), // Saturday
			end:   time.Date(2026, 2, 7, 11, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "inverted request",
			start: monday(10, 0),
			end:   monday(9, 0),
			want:  false,
		},
		{
			name:  "zero-length request",
			start: monday(9, 0),
			end:   monday(9, 0),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BookingRequest{Summary: "meeting", Start: tt.start, End: tt.end}
			if got := Authorize(req, free); got != tt.want {
				t.Errorf("Authorize(%v-%v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAuthorizeEmptyMap(t *testing.T) {
	req := BookingRequest{Summary: "meeting", Start: monday(9, 0), End: monday(9, 30)}
	if Authorize(req, FreeSlotMap{}) {
		t.Error("Authorize() against empty map = true, want false")
	}
	if Authorize(req, nil) {
		t.Error("Authorize() against nil map = true, want false")
	}
}

func TestTimeSlotContains(t *testing.T) {
	slot := TimeSlot{Start: monday(8, 0), End: monday(10, 0)}

	if !slot.Contains(monday(8, 0), monday(10, 0)) {
		t.Error("slot should contain its exact bounds")
	}
	if slot.Contains(monday(7, 59), monday(9, 0)) {
		t.Error("slot should not contain an earlier start")
	}
	if slot.Contains(monday(9, 0), monday(10, 1)) {
		t.Error("slot should not contain a later end")
	}
}
