package booking

import (
	"context"

	"voyago/models"
)

// CreateBookingInput is the caller's request to reserve an item. Exactly one
// of UserID / Guest identifies the holder.
type CreateBookingInput struct {
	ItemType   models.ItemType      `json:"itemType"`
	ItemID     string               `json:"itemId"`
	StartDate  string               `json:"startDate"`
	EndDate    string               `json:"endDate"`
	GuestCount int                  `json:"guestCount"`
	OptionIDs  []string             `json:"optionIds"`
	UserID     string               `json:"userId,omitempty"`
	Guest      *models.GuestContact `json:"guest,omitempty"`
}

// Service is the booking orchestrator: conflict-guarded creation plus
// lookups and cancellation.
type Service interface {
	Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	GetByNumber(ctx context.Context, number string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
}
