package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"realty/internal/domain/shared/events"
)

// Producer wraps a sarama sync producer for domain-event publication.
type Producer struct {
	producer    sarama.SyncProducer
	topicPrefix string
	logger      *slog.Logger
}

func NewProducer(brokers []string, topicPrefix string, logger *slog.Logger) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return &Producer{producer: p, topicPrefix: topicPrefix, logger: logger}, nil
}

// Publish serializes a domain event and sends it keyed by aggregate so
// per-aggregate ordering is preserved.
func (p *Producer) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt().UTC().Format(time.RFC3339),
		Data:        event,
	})
	if err != nil {
		return fmt.Errorf("kafka: marshal event %s: %w", event.EventName(), err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topicFor(event.EventName()),
		Key:   sarama.StringEncoder(event.AggregateID()),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka: send %s: %w", event.EventName(), err)
	}
	if p.logger != nil {
		p.logger.Debug("event published", "event", event.EventName(), "partition", partition, "offset", offset)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// topicFor maps "booking.requested" to "<prefix>booking-events".
func (p *Producer) topicFor(eventName string) string {
	aggregate := eventName
	if idx := strings.IndexByte(eventName, '.'); idx > 0 {
		aggregate = eventName[:idx]
	}
	return p.topicPrefix + aggregate + "-events"
}

type envelope struct {
	Name        string             `json:"name"`
	AggregateID string             `json:"aggregate_id"`
	OccurredAt  string             `json:"occurred_at"`
	Data        events.DomainEvent `json:"data"`
}
