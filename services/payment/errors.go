package payment

import "fmt"

// NotFoundError reports an unknown booking, payment, or session reference.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// AlreadyPaidError reports an initiation attempt against a booking whose
// payment is already completed.
type AlreadyPaidError struct {
	BookingID string
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("booking %s is already paid", e.BookingID)
}

// NotPaidError reports a confirmation attempt for a session the processor
// has not reported as paid. No local state is mutated.
type NotPaidError struct {
	SessionRef string
}

func (e *NotPaidError) Error() string {
	return fmt.Sprintf("session %s is not paid", e.SessionRef)
}

// UpstreamError wraps a failure talking to the external processor. Safe to
// retry: local state is untouched until the confirmation short-circuit.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("payment processor error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
