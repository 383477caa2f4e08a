package http

import (
	"github.com/nimblecal/meeting-booking-backend/internal/availability"
)

// AvailabilityResponse wraps a weekly template keyed by lowercase day name.
type AvailabilityResponse struct {
	Availability availability.Template `json:"availability"`
}

// UpdateAvailabilityRequest carries a full replacement template. Days left
// out of the payload become unavailable.
type UpdateAvailabilityRequest struct {
	Availability availability.Template `json:"availability"`
}

// Validate performs custom validation for UpdateAvailabilityRequest.
func (r *UpdateAvailabilityRequest) Validate() error {
	return r.Availability.Validate()
}
