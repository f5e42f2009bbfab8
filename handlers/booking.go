package handlers

import (
	"net/http"
	"strconv"

	"voyago/middleware"
	"voyago/models"
	booking "voyago/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes availability, pricing, and booking lifecycle
// endpoints.
type BookingHandler struct {
	Bookings     booking.Service
	Availability *booking.AvailabilityService
	Pricing      *booking.PricingService
	Logger       *zap.Logger
}

func NewBookingHandler(svc booking.Service, avail *booking.AvailabilityService, pricing *booking.PricingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Bookings:     svc,
		Availability: avail,
		Pricing:      pricing,
		Logger:       logger,
	}
}

// CheckAvailability reports whether an item is free over a date range.
// GET /api/availability?itemType=...&itemId=...&startDate=...&endDate=...
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	itemType := models.ItemType(c.Query("itemType"))
	itemID := c.Query("itemId")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	result, err := h.Availability.Check(c.Request.Context(), itemType, itemID, startDate, endDate)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PriceQuote computes a deterministic price breakdown without reserving
// anything.
func (h *BookingHandler) PriceQuote(c *gin.Context) {
	var input struct {
		ItemType   models.ItemType `json:"itemType"`
		ItemID     string          `json:"itemId"`
		StartDate  string          `json:"startDate"`
		EndDate    string          `json:"endDate"`
		GuestCount int             `json:"guestCount"`
		OptionIDs  []string        `json:"optionIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	quote, err := h.Pricing.Quote(c.Request.Context(), input.ItemType, input.ItemID, input.StartDate, input.EndDate, input.GuestCount, input.OptionIDs)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateBooking reserves an item. When the request carries no holder and the
// caller presented a valid token, the token subject becomes the holder.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.UserID == "" && input.Guest == nil {
		if userID, ok := c.Get(middleware.ContextUserID); ok {
			input.UserID, _ = userID.(string)
		}
	}

	b, err := h.Bookings.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking fetches a booking by id, or by booking number when the
// byNumber query flag is set.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	ref := c.Param("id")

	var (
		b   *models.Booking
		err error
	)
	if byNumber, _ := strconv.ParseBool(c.Query("byNumber")); byNumber {
		b, err = h.Bookings.GetByNumber(c.Request.Context(), ref)
	} else {
		b, err = h.Bookings.Get(c.Request.Context(), ref)
	}
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking releases the booking's dates.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
