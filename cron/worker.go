package cron

import (
	"context"
	"encoding/json"
	"errors"

	bookingRepo "voyago/database/repository/booking"
	"voyago/models"
	"voyago/services/notification"
	"voyago/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitExpiryWorker runs the async worker that cancels pending bookings whose
// payment never arrived, releasing their dates. Runs in the background until
// the process exits.
func InitExpiryWorker(redisAddr, redisPassword string, redisDB int, repo bookingRepo.BookingRepository, notifier notification.Service, logger *zap.Logger) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpireTask(repo, notifier, logger))

	go func() {
		logger.Info("starting booking expiry worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("booking expiry worker stopped", zap.Error(err))
		}
	}()
}

func handleExpireTask(repo bookingRepo.BookingRepository, notifier notification.Service, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.BookingExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid expiry payload", zap.Error(err))
			return err
		}

		// Cancel only from pending: a booking confirmed in the meantime does
		// not match, so the expiry and a racing payment confirmation cannot
		// both win.
		b, err := repo.Cancel(ctx, p.BookingID, models.BookingStatusPending)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotCancellable) || errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil
			}
			logger.Error("failed to expire booking",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}

		logger.Info("expired unpaid pending booking",
			zap.String("bookingID", b.ID),
			zap.String("bookingNumber", b.BookingNumber))
		if notifier != nil {
			notifier.Notify(ctx, b.HolderRecipient(), notification.KindBookingCancelled, b)
		}
		return nil
	}
}
