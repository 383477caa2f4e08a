package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimblecal/meeting-booking-backend/internal/auth"
	"github.com/nimblecal/meeting-booking-backend/internal/booking"
	"github.com/nimblecal/meeting-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create books a meeting on the target calendar if the requested interval
// fits a free slot.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)

	confirmation, err := h.service.Book(c.Request.Context(), userID, booking.CreateRequest{
		Summary:   req.Summary,
		Start:     req.StartTime,
		End:       req.EndTime,
		Attendees: req.Attendees,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(confirmation))
}

// FreeSlots returns this week's free windows on the target calendar.
func (h *Handler) FreeSlots(c *gin.Context) {
	userID := auth.GetUserID(c)

	free, err := h.service.FreeSlots(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFreeSlotsResponse(free))
}

// Events returns upcoming events on the booker's and the target's calendars.
func (h *Handler) Events(c *gin.Context) {
	userID := auth.GetUserID(c)

	overview, err := h.service.Events(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewEventsResponse(overview))
}
