package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	bookingRepo "voyago/database/repository/booking"
	"voyago/models"
	"voyago/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBookingService(repo *fakeBookingRepo) (*DefaultBookingService, *fakeNotifier, *fakeExpiry) {
	notifier := &fakeNotifier{}
	expiry := &fakeExpiry{}
	svc := &DefaultBookingService{
		Repo:         repo,
		Availability: &AvailabilityService{Repo: repo},
		Pricing:      &PricingService{Catalog: newFakeCatalog(testVilla()), TaxRate: 0.2},
		Notifier:     notifier,
		Expiry:       expiry,
		PendingTTL:   30 * time.Minute,
		Logger:       zap.NewNop(),
	}
	return svc, notifier, expiry
}

func guestInput() CreateBookingInput {
	return CreateBookingInput{
		ItemType:   models.ItemTypeRealEstate,
		ItemID:     "villa-1",
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-04",
		GuestCount: 3,
		OptionIDs:  []string{"breakfast"},
		Guest:      &models.GuestContact{Name: "Ada Byron", Email: "ada@example.com", Phone: "+441234567"},
	}
}

func TestCreateProducesPendingBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	svc, notifier, expiry := newTestBookingService(repo)

	b, err := svc.Create(context.Background(), guestInput())
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.BookingPaymentPending, b.PaymentStatus)
	assert.True(t, strings.HasPrefix(b.BookingNumber, "BK-"), "booking number %q", b.BookingNumber)
	assert.Equal(t, 4620.0, b.Price.TotalPrice)
	require.Len(t, b.Options, 1)

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stored.Status)

	expiry.mu.Lock()
	assert.Equal(t, []string{b.ID}, expiry.scheduled)
	expiry.mu.Unlock()

	require.Eventually(t, func() bool {
		return notifier.count(notification.KindBookingCreated) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCreateHolderExclusivity(t *testing.T) {
	svc, _, _ := newTestBookingService(newFakeBookingRepo())
	ctx := context.Background()

	both := guestInput()
	both.UserID = "user-1"
	_, err := svc.Create(ctx, both)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	neither := guestInput()
	neither.Guest = nil
	_, err = svc.Create(ctx, neither)
	require.ErrorAs(t, err, &vErr)

	incomplete := guestInput()
	incomplete.Guest = &models.GuestContact{Name: "Ada Byron"}
	_, err = svc.Create(ctx, incomplete)
	require.ErrorAs(t, err, &vErr)
}

func TestCreateUserHolder(t *testing.T) {
	svc, _, _ := newTestBookingService(newFakeBookingRepo())

	input := guestInput()
	input.Guest = nil
	input.UserID = "user-42"
	b, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "user-42", b.UserID)
	assert.Nil(t, b.Guest)
}

func TestCreateConflictCarriesExistingRanges(t *testing.T) {
	repo := newFakeBookingRepo()
	seedConfirmed(repo, "villa-1", "2024-06-03", "2024-06-08")
	svc, _, _ := newTestBookingService(repo)

	_, err := svc.Create(context.Background(), guestInput())
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	require.Len(t, cErr.Conflicts, 1)
	assert.Equal(t, models.DateRange{StartDate: "2024-06-03", EndDate: "2024-06-08"}, cErr.Conflicts[0])
}

func TestCreateLosingInsertRaceReportsConflict(t *testing.T) {
	// The advisory check passes but the storage guard rejects the insert, as
	// happens when a concurrent request takes the dates in between.
	repo := newFakeBookingRepo()
	repo.queueInsertErr(bookingRepo.ErrDateConflict)
	svc, _, _ := newTestBookingService(repo)

	_, err := svc.Create(context.Background(), guestInput())
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	require.NotEmpty(t, cErr.Conflicts)
}

func TestCreateRegeneratesNumberOnCollision(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.queueInsertErr(bookingRepo.ErrDuplicateBookingNumber)
	svc, _, _ := newTestBookingService(repo)

	b, err := svc.Create(context.Background(), guestInput())
	require.NoError(t, err)
	assert.NotEmpty(t, b.BookingNumber)
	assert.Equal(t, 2, repo.inserts)
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.queueInsertErr(
		bookingRepo.ErrDuplicateBookingNumber,
		bookingRepo.ErrDuplicateBookingNumber,
		bookingRepo.ErrDuplicateBookingNumber,
	)
	svc, _, _ := newTestBookingService(repo)

	_, err := svc.Create(context.Background(), guestInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, bookingRepo.ErrDuplicateBookingNumber)
	assert.Equal(t, numberAttempts, repo.inserts)
}

func TestBookingNumbersAreUnique(t *testing.T) {
	const n = 10000
	var (
		mu      sync.Mutex
		numbers = make(map[string]struct{}, n)
		wg      sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num := newBookingNumber()
			mu.Lock()
			numbers[num] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, numbers, n)
}

func TestGetUnknownBooking(t *testing.T) {
	svc, _, _ := newTestBookingService(newFakeBookingRepo())

	_, err := svc.Get(context.Background(), "no-such-id")
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestGetByNumber(t *testing.T) {
	repo := newFakeBookingRepo()
	svc, _, _ := newTestBookingService(repo)

	b, err := svc.Create(context.Background(), guestInput())
	require.NoError(t, err)

	found, err := svc.GetByNumber(context.Background(), b.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)
}

func TestCancelReleasesDates(t *testing.T) {
	repo := newFakeBookingRepo()
	svc, notifier, _ := newTestBookingService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, guestInput())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	// The same dates can be booked again.
	_, err = svc.Create(ctx, guestInput())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return notifier.count(notification.KindBookingCancelled) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCancelRejectsFinalStatuses(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.seed(&models.Booking{
		ID:       "bk-done",
		ItemType: models.ItemTypeRealEstate,
		ItemID:   "villa-1",
		Status:   models.BookingStatusCompleted,
	})
	svc, _, _ := newTestBookingService(repo)

	_, err := svc.Cancel(context.Background(), "bk-done")
	var ncErr *NotCancellableError
	require.ErrorAs(t, err, &ncErr)
	assert.Equal(t, models.BookingStatusCompleted, ncErr.Status)

	_, err = svc.Cancel(context.Background(), "no-such-id")
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
}
