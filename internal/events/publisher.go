package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// EventPublisher publishes wellness events to the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Bus bundles the publisher and subscriber ends of the event transport.
// With the default in-process GoChannel both ends share one instance; with
// Kafka they are independent clients.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// NewBus creates the event transport. Kafka is used when brokers are
// configured, otherwise an in-process GoChannel pub/sub.
func NewBus(kafkaBrokers []string, logger *slog.Logger) (*Bus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if len(kafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   kafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}

		subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
			Brokers:       kafkaBrokers,
			Unmarshaler:   kafka.DefaultMarshaler{},
			ConsumerGroup: SourceWellnessService,
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka subscriber: %w", err)
		}

		return &Bus{Publisher: publisher, Subscriber: subscriber}, nil
	}

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, wmLogger)

	return &Bus{Publisher: pubsub, Subscriber: pubsub}, nil
}

func (b *Bus) Close() error {
	// GoChannel: publisher and subscriber are the same instance; closing
	// twice is harmless but skip the duplicate call anyway.
	if p, ok := b.Subscriber.(message.Publisher); ok && p == b.Publisher {
		return b.Publisher.Close()
	}
	if err := b.Publisher.Close(); err != nil {
		return err
	}
	return b.Subscriber.Close()
}

// ===== WATERMILL PUBLISHER =====

type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewWatermillPublisher wraps a watermill publisher in the EventPublisher
// interface.
func NewWatermillPublisher(publisher message.Publisher, logger *slog.Logger) EventPublisher {
	return &watermillPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *watermillPublisher) Publish(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Source == "" {
		event.Source = SourceWellnessService
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)

	if err := p.publisher.Publish(TopicWellnessEvents, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published event", "event_id", event.ID, "event_type", event.Type)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
