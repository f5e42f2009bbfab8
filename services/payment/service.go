package payment

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "voyago/database/repository/booking"
	paymentRepo "voyago/database/repository/payment"
	"voyago/models"
	"voyago/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentService implements Service against the repositories and the
// processor gateway.
type DefaultPaymentService struct {
	Payments   paymentRepo.PaymentRepository
	Bookings   bookingRepo.BookingRepository
	Gateway    Gateway
	Notifier   notification.Service
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

// Initiate opens a payment attempt for the booking: a local pending payment
// carrying the booking's immutable total, then a checkout session at the
// processor. If the processor call fails the local payment stays pending so
// a retry can supersede it; the stored session reference is the single
// source of truth for later reconciliation.
func (s *DefaultPaymentService) Initiate(ctx context.Context, bookingID, method string) (*InitiateResult, error) {
	if method == "" {
		method = "card"
	}

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
		return nil, err
	}
	if b.PaymentStatus == models.BookingPaymentCompleted {
		return nil, &AlreadyPaidError{BookingID: bookingID}
	}

	p := &models.Payment{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		Amount:    b.Price.TotalPrice,
		Currency:  b.Price.Currency,
		Method:    method,
		Status:    models.PaymentStatusPending,
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}
	if err := s.Bookings.AddPaymentRef(ctx, b.ID, p.ID); err != nil {
		s.Logger.Warn("failed to attach payment to booking",
			zap.String("bookingID", b.ID), zap.String("paymentID", p.ID), zap.Error(err))
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutParams{
		Amount:      p.Amount,
		Currency:    p.Currency,
		Description: fmt.Sprintf("Booking %s", b.BookingNumber),
		Reference:   p.ID,
		SuccessURL:  s.SuccessURL,
		CancelURL:   s.CancelURL,
	})
	if err != nil {
		s.Logger.Error("checkout session creation failed",
			zap.String("paymentID", p.ID), zap.Error(err))
		return nil, &UpstreamError{Err: err}
	}

	if err := s.Payments.SetSessionRef(ctx, p.ID, sess.ID); err != nil {
		return nil, fmt.Errorf("failed to store session ref: %w", err)
	}

	s.Logger.Info("payment session initiated",
		zap.String("bookingID", b.ID),
		zap.String("paymentID", p.ID),
		zap.String("sessionRef", sess.ID))
	return &InitiateResult{PaymentID: p.ID, CheckoutURL: sess.URL}, nil
}

// Confirm reconciles a processor-reported outcome with local state. It is
// idempotent: repeated invocations for the same session reference converge
// on the same payment and booking, and only the invocation that applies the
// pending-to-completed transition triggers the notification.
func (s *DefaultPaymentService) Confirm(ctx context.Context, sessionRef string) (*ConfirmResult, error) {
	if sessionRef == "" {
		return nil, &NotFoundError{Resource: "session", ID: sessionRef}
	}

	status, err := s.Gateway.GetSessionStatus(ctx, sessionRef)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	if !status.Paid {
		return nil, &NotPaidError{SessionRef: sessionRef}
	}

	p, b, applied, err := s.Payments.ConfirmBySessionRef(ctx, sessionRef, status.TransactionRef)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, &NotFoundError{Resource: "session", ID: sessionRef}
		}
		return nil, fmt.Errorf("payment confirmation failed: %w", err)
	}

	if applied {
		s.Logger.Info("payment confirmed",
			zap.String("bookingID", b.ID),
			zap.String("paymentID", p.ID),
			zap.String("transactionRef", p.TransactionRef))
		if s.Notifier != nil {
			go s.Notifier.Notify(context.Background(), b.HolderRecipient(), notification.KindBookingConfirmed, b)
		}
	}

	return &ConfirmResult{Payment: p, Booking: b}, nil
}
