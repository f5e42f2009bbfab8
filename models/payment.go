package models

import "time"

// PaymentStatus values. Status only moves forward: pending -> processing ->
// completed|failed, or completed -> refunded.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// Payment represents one attempt to collect money for a booking. Amount and
// currency are copied from the booking's price breakdown at creation and are
// immutable afterwards.
type Payment struct {
	ID                 string        `bson:"id" json:"id"`
	BookingID          string        `bson:"booking_id" json:"bookingId"`
	Amount             float64       `bson:"amount" json:"amount"`
	Currency           string        `bson:"currency" json:"currency"`
	Method             string        `bson:"method" json:"method"`
	Status             PaymentStatus `bson:"status" json:"status"`
	ProviderSessionRef string        `bson:"provider_session_ref,omitempty" json:"providerSessionRef,omitempty"`
	TransactionRef     string        `bson:"transaction_ref,omitempty" json:"transactionRef,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}
