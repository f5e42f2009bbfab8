package bookingRepo

import (
	"context"
	"errors"

	"voyago/models"
)

var (
	// ErrBookingNotFound is returned when no booking matches the lookup.
	ErrBookingNotFound = errors.New("booking repo: booking not found")
	// ErrDateConflict is returned when an insert loses the day-lock race:
	// another blocking booking already holds at least one requested day.
	ErrDateConflict = errors.New("booking repo: dates already booked")
	// ErrDuplicateBookingNumber is returned when the generated booking
	// number collides; the caller regenerates and retries.
	ErrDuplicateBookingNumber = errors.New("booking repo: booking number already exists")
	// ErrNotCancellable is returned when the booking exists but is not in a
	// status the requested cancellation allows.
	ErrNotCancellable = errors.New("booking repo: booking not in a cancellable status")
)

// BookingRepository persists bookings and enforces the no-double-booking
// invariant at the storage level via per-day lock documents.
type BookingRepository interface {
	// Insert persists the booking atomically with one day-lock document per
	// calendar day of its range, then promotes it from draft to pending
	// inside the same transaction. Returns ErrDateConflict when any day is
	// already held by a blocking booking.
	Insert(ctx context.Context, b *models.Booking) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByNumber(ctx context.Context, number string) (*models.Booking, error)

	// FindOverlapping returns bookings in a blocking status whose inclusive
	// date range overlaps r for the given item. Advisory only; Insert is the
	// correctness mechanism.
	FindOverlapping(ctx context.Context, itemType models.ItemType, itemID string, r models.DateRange) ([]models.Booking, error)

	// Cancel transitions the booking to cancelled when its current status is
	// one of from, and releases its day locks in the same transaction.
	Cancel(ctx context.Context, id string, from ...models.BookingStatus) (*models.Booking, error)

	// AddPaymentRef appends a payment id to the booking's payment list.
	AddPaymentRef(ctx context.Context, bookingID, paymentID string) error
}
