package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// dayLock is one calendar day held by a blocking booking.
type dayLock struct {
	ItemType  models.ItemType `bson:"item_type"`
	ItemID    string          `bson:"item_id"`
	Day       string          `bson:"day"`
	BookingID string          `bson:"booking_id"`
}

// Insert persists the booking and its day locks as one transaction. Two
// concurrent overlapping inserts serialize on the unique day-lock index, so
// exactly one commits; the other aborts with ErrDateConflict.
func (r *MongoBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	days, err := b.Range().Days()
	if err != nil {
		return fmt.Errorf("invalid booking range: %w", err)
	}
	locks := make([]interface{}, 0, len(days))
	for _, day := range days {
		locks = append(locks, dayLock{
			ItemType:  b.ItemType,
			ItemID:    b.ItemID,
			Day:       day,
			BookingID: b.ID,
		})
	}

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Status = models.BookingStatusDraft

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, b); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateBookingNumber
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
		if _, err := r.dayColl.InsertMany(sc, locks); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDateConflict
			}
			return fmt.Errorf("insert day locks failed: %w", err)
		}
		// Draft exists only inside this transaction; the caller never
		// observes it.
		update := bson.M{"$set": bson.M{"status": models.BookingStatusPending, "updated_at": now}}
		if _, err := r.bookingColl.UpdateOne(sc, bson.M{"id": b.ID}, update); err != nil {
			return fmt.Errorf("promote booking to pending failed: %w", err)
		}
		return nil
	}

	if err := r.runTransaction(ctx, txnFn); err != nil {
		return err
	}
	b.Status = models.BookingStatusPending
	return nil
}

// Cancel transitions the booking to cancelled and releases its day locks in
// the same transaction, restoring availability for those dates.
func (r *MongoBookingRepo) Cancel(ctx context.Context, id string, from ...models.BookingStatus) (*models.Booking, error) {
	if len(from) == 0 {
		from = []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}
	}
	var cancelled models.Booking

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": id, "status": bson.M{"$in": from}}
		update := bson.M{"$set": bson.M{
			"status":     models.BookingStatusCancelled,
			"updated_at": time.Now().UTC(),
		}}
		res, err := r.bookingColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			if err := r.bookingColl.FindOne(sc, bson.M{"id": id}).Err(); err == mongo.ErrNoDocuments {
				return ErrBookingNotFound
			}
			return ErrNotCancellable
		}
		if _, err := r.dayColl.DeleteMany(sc, bson.M{"booking_id": id}); err != nil {
			return fmt.Errorf("release day locks failed: %w", err)
		}
		return r.bookingColl.FindOne(sc, bson.M{"id": id}).Decode(&cancelled)
	}

	if err := r.runTransaction(ctx, txnFn); err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// runTransaction executes txnFn inside a Mongo session transaction.
func (r *MongoBookingRepo) runTransaction(ctx context.Context, txnFn func(mongo.SessionContext) error) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
