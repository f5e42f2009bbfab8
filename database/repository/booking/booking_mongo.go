package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB. bookingColl
// holds the booking documents; dayColl holds one lock document per booked
// calendar day, guarded by a unique (item_type, item_id, day) index.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	dayColl     *mongo.Collection
}

// NewMongoBookingRepo creates the repository and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) (*MongoBookingRepo, error) {
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		dayColl:     db.Collection("booking_days"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// GetByID retrieves a booking by its unique id.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

// GetByNumber retrieves a booking by its human-facing booking number.
func (r *MongoBookingRepo) GetByNumber(ctx context.Context, number string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"booking_number": number}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", number, err)
	}
	return &b, nil
}

// FindOverlapping returns blocking bookings whose inclusive range overlaps r.
// Dates are stored as ISO day strings, so lexicographic comparison matches
// chronological order and the closed-interval predicate maps directly onto
// the query: start_date <= r.End AND end_date >= r.Start.
func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, itemType models.ItemType, itemID string, dr models.DateRange) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"item_type":  itemType,
		"item_id":    itemID,
		"status":     bson.M{"$in": []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}},
		"start_date": bson.M{"$lte": dr.EndDate},
		"end_date":   bson.M{"$gte": dr.StartDate},
	}
	cursor, err := r.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, cursor.Err()
}

// AddPaymentRef appends a payment id to the booking's payment list.
func (r *MongoBookingRepo) AddPaymentRef(ctx context.Context, bookingID, paymentID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"payment_ids": paymentID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to attach payment %s to booking %s: %w", paymentID, bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}
