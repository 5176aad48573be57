package handlers

import (
	"errors"
	"net/http"

	"calendary/calendar"
	"calendary/middleware"
	"calendary/models"
	"calendary/services/availability"
	"calendary/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the slot proposal pipeline over HTTP.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// ProposeHandler handles POST /api/availability.
func (h *AvailabilityHandler) ProposeHandler(c *gin.Context) {
	var input models.AvailabilityRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing emailBody or duration", err.Error())
		return
	}

	userID := middleware.SessionUserID(c)
	resp, err := h.Service.Propose(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			utils.JSONError(c, http.StatusBadRequest, "Missing emailBody or duration", err.Error())
		case errors.Is(err, calendar.ErrNotConnected):
			utils.JSONError(c, http.StatusUnauthorized, "Google Calendar is not connected", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to query calendar", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
