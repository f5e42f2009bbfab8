package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "voyago/database/repository/booking"
	"voyago/models"
	"voyago/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// numberAttempts bounds booking-number regeneration on unique-index
// collisions.
const numberAttempts = 3

// ExpiryScheduler queues the deferred expiry of a pending booking that never
// receives payment.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error
}

// DefaultBookingService orchestrates booking creation: validation, the
// advisory availability guard, price snapshotting, and the transactional
// insert that enforces the no-double-booking invariant.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Availability *AvailabilityService
	Pricing      *PricingService
	Notifier     notification.Service
	Expiry       ExpiryScheduler // optional
	PendingTTL   time.Duration
	Logger       *zap.Logger
}

// Create reserves the item for the requested range. The availability check
// here is a fast pre-flight for a friendly error; the insert's day-lock
// transaction is what actually excludes concurrent overlaps.
func (s *DefaultBookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	quote, err := s.Pricing.Quote(ctx, input.ItemType, input.ItemID, input.StartDate, input.EndDate, input.GuestCount, input.OptionIDs)
	if err != nil {
		return nil, err
	}

	avail, err := s.Availability.Check(ctx, input.ItemType, input.ItemID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, &ConflictError{Conflicts: avail.Conflicts}
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		ItemType:      input.ItemType,
		ItemID:        input.ItemID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		GuestCount:    input.GuestCount,
		Options:       quote.Options,
		UserID:        input.UserID,
		Guest:         input.Guest,
		Price:         quote.Price,
		PaymentStatus: models.BookingPaymentPending,
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		b.BookingNumber = newBookingNumber()
		err = s.Repo.Insert(ctx, b)
		if err == nil {
			break
		}
		if errors.Is(err, bookingRepo.ErrDuplicateBookingNumber) {
			s.Logger.Warn("booking number collision, regenerating",
				zap.String("bookingNumber", b.BookingNumber))
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDateConflict) {
			// Lost the insert race; re-read the winner's ranges for the caller.
			recheck, checkErr := s.Availability.Check(ctx, input.ItemType, input.ItemID, input.StartDate, input.EndDate)
			if checkErr != nil || len(recheck.Conflicts) == 0 {
				return nil, &ConflictError{Conflicts: []models.DateRange{{StartDate: input.StartDate, EndDate: input.EndDate}}}
			}
			return nil, &ConflictError{Conflicts: recheck.Conflicts}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Expiry != nil && s.PendingTTL > 0 {
		if err := s.Expiry.ScheduleExpiry(ctx, b.ID, time.Now().Add(s.PendingTTL)); err != nil {
			s.Logger.Warn("failed to schedule booking expiry",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	s.notify(b, notification.KindBookingCreated)
	return b, nil
}

// Get retrieves a booking by id.
func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: id}
		}
		return nil, err
	}
	return b, nil
}

// GetByNumber retrieves a booking by its human-facing number.
func (s *DefaultBookingService) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	b, err := s.Repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: number}
		}
		return nil, err
	}
	return b, nil
}

// Cancel transitions a pending or confirmed booking to cancelled and frees
// its dates.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.Cancel(ctx, id, models.BookingStatusPending, models.BookingStatusConfirmed)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, &NotFoundError{Resource: "booking", ID: id}
		case errors.Is(err, bookingRepo.ErrNotCancellable):
			current, getErr := s.Repo.GetByID(ctx, id)
			if getErr != nil {
				return nil, getErr
			}
			return nil, &NotCancellableError{ID: id, Status: current.Status}
		}
		return nil, err
	}
	s.notify(b, notification.KindBookingCancelled)
	return b, nil
}

// notify dispatches fire-and-forget; delivery failures are the notifier's
// problem, never the caller's.
func (s *DefaultBookingService) notify(b *models.Booking, kind notification.Kind) {
	if s.Notifier == nil {
		return
	}
	go s.Notifier.Notify(context.Background(), b.HolderRecipient(), kind, b)
}

func validateCreate(input CreateBookingInput) error {
	if !input.ItemType.Valid() {
		return NewValidationError("unknown item type %q", input.ItemType)
	}
	if input.ItemID == "" {
		return NewValidationError("item id is required")
	}
	if input.GuestCount < 1 {
		return NewValidationError("guest count must be at least 1")
	}
	if _, err := parseRange(input.StartDate, input.EndDate); err != nil {
		return err
	}

	hasUser := input.UserID != ""
	hasGuest := input.Guest != nil
	switch {
	case hasUser && hasGuest:
		return NewValidationError("booking holder must be a user or a guest contact, not both")
	case !hasUser && !hasGuest:
		return NewValidationError("booking holder is required")
	case hasGuest:
		g := input.Guest
		if g.Name == "" || g.Email == "" || g.Phone == "" {
			return NewValidationError("guest contact requires name, email and phone")
		}
	}
	return nil
}

// newBookingNumber builds a human-facing booking number from the current
// date and a random suffix. Collisions are handled by the unique index and
// a regeneration retry, not by the generator itself.
func newBookingNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
	return fmt.Sprintf("BK-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
