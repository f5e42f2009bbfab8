package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeBookingExpire is the task type for expiring unpaid pending bookings.
const TypeBookingExpire = "booking:expire"

// BookingExpirePayload identifies the booking to expire.
type BookingExpirePayload struct {
	BookingID string `json:"bookingId"`
}

// ExpiryScheduler enqueues deferred expiry tasks on the Redis-backed queue.
type ExpiryScheduler struct {
	client *asynq.Client
}

// NewExpiryScheduler creates a scheduler talking to the given Redis queue.
func NewExpiryScheduler(redisAddr, redisPassword string, redisDB int) *ExpiryScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return &ExpiryScheduler{client: client}
}

// ScheduleExpiry queues a booking:expire task to fire at the given time.
func (s *ExpiryScheduler) ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error {
	payload, err := json.Marshal(BookingExpirePayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal expiry payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingExpire, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("failed to enqueue expiry task: %w", err)
	}
	return nil
}

// Close releases the queue client.
func (s *ExpiryScheduler) Close() error {
	return s.client.Close()
}
