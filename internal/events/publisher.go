package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/Torqix/aarohan-backend/pkg/logger"
)

// Topics for domain events
const (
	TopicRegistrationCreated   = "registration.created"
	TopicRegistrationApproved  = "registration.approved"
	TopicPaymentCompleted      = "payment.completed"
	TopicPaymentFailed         = "payment.failed"
	TopicRegistrationCheckedIn = "registration.checked-in"
)

// RegistrationCreatedEvent is published after a registration commits
type RegistrationCreatedEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	TeamID         string    `json:"team_id,omitempty"`
	PaymentStatus  string    `json:"payment_status"`
	Timestamp      time.Time `json:"timestamp"`
}

// RegistrationStatusEvent is published when an admin decides a registration
type RegistrationStatusEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// PaymentEvent is published when a payment reaches a terminal state
type PaymentEvent struct {
	PaymentID      string    `json:"payment_id"`
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// CheckInEvent is published after a successful door scan
type CheckInEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	UserID         string    `json:"user_id"`
	CheckedInBy    string    `json:"checked_in_by"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher emits domain events for downstream consumers (mail, analytics).
// Publishing is best-effort: a broker outage must never fail the request
// that produced the event.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{})
	Close()
}

// KafkaPublisher publishes events to Kafka via franz-go
type KafkaPublisher struct {
	client *kgo.Client
}

// NewKafkaPublisher connects to the given brokers
func NewKafkaPublisher(brokers []string, clientID string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordRetries(3),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client}, nil
}

// Publish serializes the payload and produces it asynchronously. Delivery
// failures are logged, not returned.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) {
	value, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorCtx(ctx, "failed to marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			logger.Error("failed to produce event", zap.String("topic", topic), zap.Error(err))
		}
	})
}

// Close flushes outstanding records and closes the client
func (p *KafkaPublisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		logger.Error("kafka flush on close", zap.Error(err))
	}
	p.client.Close()
}

// NoopPublisher discards events. Used when Kafka is disabled.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops everything
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish does nothing
func (p *NoopPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) {}

// Close does nothing
func (p *NoopPublisher) Close() {}
