package notification

import (
	"context"

	"voyago/models"
)

// Kind is the notification template selector.
type Kind string

const (
	KindBookingCreated   Kind = "booking_created"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
)

// Service dispatches booking notifications to the delivery collaborator.
// Fire and forget: implementations log failures and never propagate them,
// because confirmation is the durable fact and notification is best-effort.
type Service interface {
	Notify(ctx context.Context, recipient string, kind Kind, b *models.Booking)
}
