package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingservice "realty/internal/app/services/booking"
	"realty/internal/domain/availability"
	domainbooking "realty/internal/domain/booking"
	"realty/internal/domain/shared/dates"
)

type BookingHandler struct {
	Service *bookingservice.Service
}

type createBookingRequest struct {
	PropertyID      string `json:"property_id" binding:"required"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	AppointmentDate string `json:"appointment_date"`
	PaymentMethod   string `json:"payment_method"`
}

// Create parses candidate dates and runs the admission pipeline. A
// rejection carries the reason code: malformed submissions are a 400,
// conflicts with the current calendar state a 409, never a 500.
func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": string(availability.ReasonMalformedInput)})
		return
	}

	params := bookingservice.RequestParams{
		PropertyID: req.PropertyID,
		GuestID:    user.ID,
		Payment:    domainbooking.PaymentMethod(req.PaymentMethod),
	}
	var parseErr error
	if req.CheckIn != "" {
		params.CheckIn, parseErr = dates.ParseDay(req.CheckIn)
	}
	if parseErr == nil && req.CheckOut != "" {
		params.CheckOut, parseErr = dates.ParseDay(req.CheckOut)
	}
	if parseErr == nil && req.AppointmentDate != "" {
		params.Appointment, parseErr = dates.ParseDay(req.AppointmentDate)
	}
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error(), "reason": string(availability.ReasonMalformedInput)})
		return
	}

	result, err := h.Service.Request(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	if !result.Accepted {
		c.JSON(statusForReason(result.Reason), result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// statusForReason separates bad submissions (the guest sent unusable
// dates) from conflicts with the property's current calendar state.
func statusForReason(reason string) int {
	switch availability.Reason(reason) {
	case availability.ReasonInvalidRange, availability.ReasonMissingDate, availability.ReasonMalformedInput:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func (h BookingHandler) Cancel(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	summary, err := h.Service.Cancel(c.Request.Context(), user.ID, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h BookingHandler) Confirm(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	summary, err := h.Service.Confirm(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h BookingHandler) MyBookings(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	collection, err := h.Service.GuestBookings(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}

func (h BookingHandler) PropertyBookings(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	collection, err := h.Service.PropertyBookings(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, collection)
}
