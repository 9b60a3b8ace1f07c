package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityservice "realty/internal/app/services/availability"
	"realty/internal/domain/availability"
	"realty/internal/domain/shared/dates"
)

type AvailabilityHandler struct {
	Service *availabilityservice.Service
}

// Calendar returns the disabled-day list for the date-picker. from/to are
// optional ISO dates; the service applies its default horizon.
func (h AvailabilityHandler) Calendar(c *gin.Context) {
	var from, to dates.Day
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = dates.ParseDay(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": string(availability.ReasonMalformedInput)})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = dates.ParseDay(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": string(availability.ReasonMalformedInput)})
			return
		}
	}
	cal, err := h.Service.Calendar(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}
