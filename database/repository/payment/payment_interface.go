package paymentRepo

import (
	"context"
	"errors"

	"voyago/models"
)

var (
	// ErrPaymentNotFound is returned when no payment matches the lookup.
	ErrPaymentNotFound = errors.New("payment repo: payment not found")
	// ErrPaymentNotCompletable is returned when the payment exists but has
	// already reached failed or refunded; status never moves backward.
	ErrPaymentNotCompletable = errors.New("payment repo: payment cannot transition to completed")
)

// PaymentRepository persists payments and performs the atomic confirmation
// write shared between a payment and its booking.
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetBySessionRef(ctx context.Context, sessionRef string) (*models.Payment, error)

	// SetSessionRef stores the processor's opaque session reference on the
	// payment once the checkout session exists.
	SetSessionRef(ctx context.Context, id, sessionRef string) error

	// ConfirmBySessionRef performs the idempotent confirmation: a single
	// conditional update moves the payment from pending/processing to
	// completed, and the linked booking is finalized in the same
	// transaction. The returned bool is true only for the invocation that
	// actually applied the transition; callers that lose the race get the
	// already-final state with false.
	ConfirmBySessionRef(ctx context.Context, sessionRef, transactionRef string) (*models.Payment, *models.Booking, bool, error)
}
