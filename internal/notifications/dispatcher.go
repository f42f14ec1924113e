// Package notifications publishes domain events to Kafka for the
// out-of-process notification workers (email, push). Delivery is
// fire-and-forget from the caller's perspective: a publish failure is
// logged and never rolls back the write that triggered it.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

// Dispatcher is the emit contract the booking and webhook flows depend on.
type Dispatcher interface {
	Emit(ctx context.Context, eventName string, payload map[string]interface{}) error
	Close() error
}

// Message is the envelope written to the notification topic.
type Message struct {
	ID        uuid.UUID              `json:"id"`
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload"`
	EmittedAt time.Time              `json:"emitted_at"`
}

// KafkaDispatcher publishes messages through a synchronous producer so
// an Emit that returns nil is actually on the broker.
type KafkaDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaDispatcher(brokers []string, topic string, log *logger.Logger) (*KafkaDispatcher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, apperrors.Internal("failed to create notification producer", err)
	}

	return &KafkaDispatcher{producer: producer, topic: topic, log: log}, nil
}

func (d *KafkaDispatcher) Emit(ctx context.Context, eventName string, payload map[string]interface{}) error {
	message := Message{
		ID:        uuid.New(),
		Event:     eventName,
		Payload:   payload,
		EmittedAt: time.Now(),
	}

	value, err := json.Marshal(message)
	if err != nil {
		return apperrors.Internal("failed to encode notification", err)
	}

	// Key by booking so all notifications for one booking stay ordered
	// within a partition.
	key := eventName
	if bookingID, ok := payload["booking_id"].(string); ok && bookingID != "" {
		key = bookingID
	}

	_, _, err = d.producer.SendMessage(&sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return apperrors.Internal("failed to publish notification", err)
	}

	d.log.Debug("notification published", "event", eventName, "key", key)
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.producer.Close()
}

// NoopDispatcher swallows every emit. Used when Kafka is disabled and
// in tests that do not assert on notifications.
type NoopDispatcher struct{}

func (NoopDispatcher) Emit(ctx context.Context, eventName string, payload map[string]interface{}) error {
	return nil
}

func (NoopDispatcher) Close() error {
	return nil
}
