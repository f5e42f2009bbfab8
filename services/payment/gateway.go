package payment

import "context"

// CheckoutParams describes the session requested from the processor.
type CheckoutParams struct {
	Amount      float64
	Currency    string
	Description string
	Reference   string // local payment id, echoed back by the processor
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the processor's answer: an opaque session id and the
// URL the customer completes the card capture at.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the processor-reported outcome of a checkout session.
type SessionStatus struct {
	Paid           bool
	TransactionRef string
}

// Gateway is the slice of the external processor's contract this service
// consumes: session creation and status retrieval. The processor's own
// ledger stays on its side.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
}
