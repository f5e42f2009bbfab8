package booking

import (
	"fmt"

	"voyago/models"
)

// ValidationError reports missing or malformed caller input. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown item or booking.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConflictError reports a date overlap with existing blocking bookings. It
// carries the conflicting ranges so the caller can display them; the caller
// must choose different dates, there is no automatic retry.
type ConflictError struct {
	Conflicts []models.DateRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested dates conflict with %d existing booking(s)", len(e.Conflicts))
}

// NotCancellableError reports a cancel attempt on a booking whose status
// does not allow it.
type NotCancellableError struct {
	ID     string
	Status models.BookingStatus
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("booking %s cannot be cancelled from status %s", e.ID, e.Status)
}
