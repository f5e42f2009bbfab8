package payment

import (
	"context"

	"voyago/models"
)

// InitiateResult is what the caller needs to send the customer to checkout.
type InitiateResult struct {
	PaymentID   string `json:"paymentId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// ConfirmResult is the reconciled pair after confirmation.
type ConfirmResult struct {
	Payment *models.Payment `json:"payment"`
	Booking *models.Booking `json:"booking"`
}

// Service opens checkout sessions for bookings and reconciles their
// outcomes idempotently.
type Service interface {
	Initiate(ctx context.Context, bookingID, method string) (*InitiateResult, error)
	Confirm(ctx context.Context, sessionRef string) (*ConfirmResult, error)
}
