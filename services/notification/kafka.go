package notification

import (
	"context"
	"encoding/json"
	"time"

	"voyago/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// event is the message body placed on the notification topic. The delivery
// collaborator (e-mail, push) consumes it downstream.
type event struct {
	Kind          Kind      `json:"kind"`
	Recipient     string    `json:"recipient"`
	BookingID     string    `json:"bookingId"`
	BookingNumber string    `json:"bookingNumber"`
	ItemType      string    `json:"itemType"`
	ItemID        string    `json:"itemId"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	TotalPrice    float64   `json:"totalPrice"`
	Currency      string    `json:"currency"`
	SentAt        time.Time `json:"sentAt"`
}

// KafkaNotifier publishes notification events to a Kafka topic.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaNotifier connects a sync producer to the given brokers.
func NewKafkaNotifier(brokers []string, topic string, logger *zap.Logger) (*KafkaNotifier, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaNotifier{producer: producer, topic: topic, logger: logger}, nil
}

// Notify publishes the event. Failures are logged and swallowed.
func (n *KafkaNotifier) Notify(ctx context.Context, recipient string, kind Kind, b *models.Booking) {
	payload, err := json.Marshal(event{
		Kind:          kind,
		Recipient:     recipient,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		ItemType:      string(b.ItemType),
		ItemID:        b.ItemID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		TotalPrice:    b.Price.TotalPrice,
		Currency:      b.Price.Currency,
		SentAt:        time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error("failed to marshal notification", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(b.ID),
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := n.producer.SendMessage(msg); err != nil {
		n.logger.Warn("notification publish failed",
			zap.String("kind", string(kind)),
			zap.String("bookingID", b.ID),
			zap.Error(err))
		return
	}
	n.logger.Debug("notification published",
		zap.String("kind", string(kind)), zap.String("bookingID", b.ID))
}

// Close releases the producer.
func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}

// LogNotifier is the fallback used when no broker is configured; it only
// records that a notification would have been sent.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(ctx context.Context, recipient string, kind Kind, b *models.Booking) {
	n.Logger.Info("notification (no broker configured)",
		zap.String("kind", string(kind)),
		zap.String("recipient", recipient),
		zap.String("bookingNumber", b.BookingNumber))
}
