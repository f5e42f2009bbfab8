package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "voyago/database/repository/booking"
	paymentRepo "voyago/database/repository/payment"
	"voyago/models"
	"voyago/services/notification"
)

// fakePaymentRepo is an in-memory PaymentRepository whose confirmation write
// mirrors the Mongo implementation's compare-and-swap semantics.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
	bookings *fakeBookingStore
}

func newFakePaymentRepo(bookings *fakeBookingStore) *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}, bookings: bookings}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePaymentRepo) GetBySessionRef(ctx context.Context, sessionRef string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.findBySessionRef(sessionRef)
	if p == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePaymentRepo) SetSessionRef(ctx context.Context, id, sessionRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.ProviderSessionRef = sessionRef
	return nil
}

func (r *fakePaymentRepo) ConfirmBySessionRef(ctx context.Context, sessionRef, transactionRef string) (*models.Payment, *models.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findBySessionRef(sessionRef)
	if p == nil {
		return nil, nil, false, paymentRepo.ErrPaymentNotFound
	}

	applied := false
	switch p.Status {
	case models.PaymentStatusPending, models.PaymentStatusProcessing:
		p.Status = models.PaymentStatusCompleted
		p.TransactionRef = transactionRef
		p.UpdatedAt = time.Now().UTC()
		r.bookings.finalize(p.BookingID)
		applied = true
	case models.PaymentStatusCompleted:
		// Replay: return the settled state untouched.
	default:
		return nil, nil, false, paymentRepo.ErrPaymentNotCompletable
	}

	b, err := r.bookings.get(p.BookingID)
	if err != nil {
		return nil, nil, false, err
	}
	clone := *p
	return &clone, b, applied, nil
}

func (r *fakePaymentRepo) findBySessionRef(sessionRef string) *models.Payment {
	for _, p := range r.payments {
		if p.ProviderSessionRef == sessionRef && sessionRef != "" {
			return p
		}
	}
	return nil
}

// fakeBookingStore holds bookings for the payment flows. Only the methods
// the payment service touches do real work.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingStore(bookings ...*models.Booking) *fakeBookingStore {
	s := &fakeBookingStore{bookings: map[string]*models.Booking{}}
	for _, b := range bookings {
		clone := *b
		s.bookings[b.ID] = &clone
	}
	return s
}

func (s *fakeBookingStore) get(id string) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (s *fakeBookingStore) finalize(id string) {
	if b, ok := s.bookings[id]; ok && b.Status.Blocking() {
		b.Status = models.BookingStatusConfirmed
		b.PaymentStatus = models.BookingPaymentCompleted
	}
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

func (s *fakeBookingStore) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.BookingNumber == number {
			clone := *b
			return &clone, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *fakeBookingStore) AddPaymentRef(ctx context.Context, bookingID, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentIDs = append(b.PaymentIDs, paymentID)
	return nil
}

func (s *fakeBookingStore) Insert(ctx context.Context, b *models.Booking) error {
	return errors.New("not used in payment tests")
}

func (s *fakeBookingStore) FindOverlapping(ctx context.Context, itemType models.ItemType, itemID string, r models.DateRange) ([]models.Booking, error) {
	return nil, nil
}

func (s *fakeBookingStore) Cancel(ctx context.Context, id string, from ...models.BookingStatus) (*models.Booking, error) {
	return nil, errors.New("not used in payment tests")
}

// fakeGateway is a scriptable processor.
type fakeGateway struct {
	mu        sync.Mutex
	createErr error
	statusErr error
	paid      bool
	txnRef    string
	sessions  int
	statusGet int
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.sessions++
	return &CheckoutSession{
		ID:  "sess_test_1",
		URL: "https://checkout.example.com/sess_test_1",
	}, nil
}

func (g *fakeGateway) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	g.statusGet++
	return &SessionStatus{Paid: g.paid, TransactionRef: g.txnRef}, nil
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
