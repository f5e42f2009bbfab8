package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "voyago/database/repository/booking"
	catalogRepo "voyago/database/repository/catalog"
	"voyago/models"
	"voyago/services/notification"
)

// fakeBookingRepo is an in-memory BookingRepository. Insert enforces the
// same invariants as the Mongo implementation: unique booking numbers and
// no overlapping blocking bookings per item.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]*models.Booking
	insertErrs []error // queued errors returned by Insert before any real work
	inserts    int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *fakeBookingRepo) queueInsertErr(errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertErrs = append(r.insertErrs, errs...)
}

func (r *fakeBookingRepo) seed(b *models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.bookings[b.ID] = &clone
}

func (r *fakeBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++

	if len(r.insertErrs) > 0 {
		err := r.insertErrs[0]
		r.insertErrs = r.insertErrs[1:]
		return err
	}

	for _, existing := range r.bookings {
		if existing.BookingNumber == b.BookingNumber {
			return bookingRepo.ErrDuplicateBookingNumber
		}
		if existing.ItemType == b.ItemType && existing.ItemID == b.ItemID &&
			existing.Status.Blocking() && existing.Range().Overlaps(b.Range()) {
			return bookingRepo.ErrDateConflict
		}
	}

	b.Status = models.BookingStatusPending
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingNumber == number {
			clone := *b
			return &clone, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) FindOverlapping(ctx context.Context, itemType models.ItemType, itemID string, dr models.DateRange) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ItemType == itemType && b.ItemID == itemID &&
			b.Status.Blocking() && b.Range().Overlaps(dr) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id string, from ...models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	allowed := false
	for _, s := range from {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, bookingRepo.ErrNotCancellable
	}
	b.Status = models.BookingStatusCancelled
	b.UpdatedAt = time.Now().UTC()
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) AddPaymentRef(ctx context.Context, bookingID, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentIDs = append(b.PaymentIDs, paymentID)
	return nil
}

// fakeCatalog serves items from a map keyed by type and id.
type fakeCatalog struct {
	items map[string]models.Item
}

func newFakeCatalog(items ...models.Item) *fakeCatalog {
	c := &fakeCatalog{items: map[string]models.Item{}}
	for _, it := range items {
		c.items[string(it.GetType())+"/"+it.GetID()] = it
	}
	return c
}

func (c *fakeCatalog) GetItem(ctx context.Context, itemType models.ItemType, itemID string) (models.Item, error) {
	it, ok := c.items[string(itemType)+"/"+itemID]
	if !ok {
		return nil, catalogRepo.ErrItemNotFound
	}
	return it, nil
}

func (c *fakeCatalog) Exists(ctx context.Context, itemType models.ItemType, itemID string) (bool, error) {
	_, ok := c.items[string(itemType)+"/"+itemID]
	return ok, nil
}

// fakeNotifier records dispatched notifications.
type fakeNotifier struct {
	mu     sync.Mutex
	events []notification.Kind
}

func (n *fakeNotifier) Notify(ctx context.Context, recipient string, kind notification.Kind, b *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, kind)
}

func (n *fakeNotifier) count(kind notification.Kind) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, k := range n.events {
		if k == kind {
			c++
		}
	}
	return c
}

// fakeExpiry records scheduled expirations.
type fakeExpiry struct {
	mu        sync.Mutex
	scheduled []string
}

func (e *fakeExpiry) ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduled = append(e.scheduled, bookingID)
	return nil
}
