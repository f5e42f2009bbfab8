package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository. It also holds the bookings
// collection because confirmation writes payment and booking as one unit.
type MongoPaymentRepo struct {
	paymentColl *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoPaymentRepo creates the repository and ensures its indexes.
func NewMongoPaymentRepo(db *mongo.Database) (*MongoPaymentRepo, error) {
	repo := &MongoPaymentRepo{
		paymentColl: db.Collection("payments"),
		bookingColl: db.Collection("bookings"),
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

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.paymentColl.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its unique id.
func (r *MongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetBySessionRef retrieves a payment by the processor's session reference.
func (r *MongoPaymentRepo) GetBySessionRef(ctx context.Context, sessionRef string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"provider_session_ref": sessionRef})
}

func (r *MongoPaymentRepo) findOne(ctx context.Context, filter bson.M) (*models.Payment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var p models.Payment
	if err := r.paymentColl.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return &p, nil
}

// SetSessionRef stores the processor's session reference on the payment.
func (r *MongoPaymentRepo) SetSessionRef(ctx context.Context, id, sessionRef string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"provider_session_ref": sessionRef,
		"updated_at":           time.Now().UTC(),
	}}
	res, err := r.paymentColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set session ref on payment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// ConfirmBySessionRef applies the confirmation as a compare-and-swap: the
// conditional FindOneAndUpdate is the only path from pending/processing to
// completed, so concurrent invocations for the same session reference race
// on it and at most one observes the transition.
func (r *MongoPaymentRepo) ConfirmBySessionRef(ctx context.Context, sessionRef, transactionRef string) (*models.Payment, *models.Booking, bool, error) {
	var (
		payment models.Payment
		booking models.Booking
		applied bool
	)

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now().UTC()
		filter := bson.M{
			"provider_session_ref": sessionRef,
			"status": bson.M{"$in": []models.PaymentStatus{
				models.PaymentStatusPending, models.PaymentStatusProcessing,
			}},
		}
		update := bson.M{"$set": bson.M{
			"status":          models.PaymentStatusCompleted,
			"transaction_ref": transactionRef,
			"updated_at":      now,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		err := r.paymentColl.FindOneAndUpdate(sc, filter, update, opts).Decode(&payment)
		switch {
		case err == mongo.ErrNoDocuments:
			// Either unknown session ref, or another invocation got here
			// first. Re-read to tell the two apart.
			lookupErr := r.paymentColl.FindOne(sc, bson.M{"provider_session_ref": sessionRef}).Decode(&payment)
			if lookupErr == mongo.ErrNoDocuments {
				return ErrPaymentNotFound
			}
			if lookupErr != nil {
				return fmt.Errorf("failed to re-read payment: %w", lookupErr)
			}
			if payment.Status != models.PaymentStatusCompleted {
				return ErrPaymentNotCompletable
			}
			applied = false
		case err != nil:
			return fmt.Errorf("failed to complete payment: %w", err)
		default:
			applied = true
			// Finalize the booking in the same unit of work. A booking that
			// was expired between checkout and confirmation keeps its
			// cancelled status but still records the collected money.
			bookingFilter := bson.M{
				"id": payment.BookingID,
				"status": bson.M{"$in": []models.BookingStatus{
					models.BookingStatusPending, models.BookingStatusConfirmed,
				}},
			}
			bookingUpdate := bson.M{"$set": bson.M{
				"status":         models.BookingStatusConfirmed,
				"payment_status": models.BookingPaymentCompleted,
				"updated_at":     now,
			}}
			res, err := r.bookingColl.UpdateOne(sc, bookingFilter, bookingUpdate)
			if err != nil {
				return fmt.Errorf("failed to confirm booking %s: %w", payment.BookingID, err)
			}
			if res.MatchedCount == 0 {
				fallback := bson.M{"$set": bson.M{
					"payment_status": models.BookingPaymentCompleted,
					"updated_at":     now,
				}}
				if _, err := r.bookingColl.UpdateOne(sc, bson.M{"id": payment.BookingID}, fallback); err != nil {
					return fmt.Errorf("failed to record payment on booking %s: %w", payment.BookingID, err)
				}
			}
		}

		if err := r.bookingColl.FindOne(sc, bson.M{"id": payment.BookingID}).Decode(&booking); err != nil {
			return fmt.Errorf("failed to load booking %s: %w", payment.BookingID, err)
		}
		return nil
	}

	if err := r.runTransaction(ctx, txnFn); err != nil {
		return nil, nil, false, err
	}
	return &payment, &booking, applied, nil
}

// runTransaction executes txnFn inside a Mongo session transaction.
func (r *MongoPaymentRepo) runTransaction(ctx context.Context, txnFn func(mongo.SessionContext) error) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	client := r.paymentColl.Database().Client()
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
