package handlers

// HandlerBundle groups the wired handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Booking *BookingHandler
	Payment *PaymentHandler
}
