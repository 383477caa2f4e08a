package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimblecal/meeting-booking-backend/internal/auth"
	"github.com/nimblecal/meeting-booking-backend/internal/availability"
	"github.com/nimblecal/meeting-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Get returns the authenticated user's weekly availability template.
func (h *Handler) Get(c *gin.Context) {
	userID := auth.GetUserID(c)

	t, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, availability.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Availability: t})
}

// Update replaces the authenticated user's weekly availability template.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)

	t, err := h.service.Update(c.Request.Context(), userID, req.Availability)
	if err != nil {
		if errors.Is(err, availability.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Availability: t})
}
