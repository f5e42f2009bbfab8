package routes

import (
	"voyago/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers availability, pricing, and booking
// lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/availability", hb.Booking.CheckAvailability)
		api.POST("/price-quote", hb.Booking.PriceQuote)

		api.POST("/bookings", hb.Booking.CreateBooking)
		api.GET("/bookings/:id", hb.Booking.GetBooking)
		api.POST("/bookings/:id/cancel", hb.Booking.CancelBooking)
	}
}

// RegisterPaymentRoutes registers checkout endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/bookings/:id/payment", hb.Payment.InitiatePayment)
		api.GET("/payment-confirmation/:sessionRef", hb.Payment.ConfirmPayment)
	}
}
