package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events to Kafka. One writer serves every topic; the
// topic is set per message.
type KafkaPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaPublisher returns a publisher connected to the given brokers.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
			RequiredAcks:           kafkago.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish sends a JSON-serialised event keyed by ride request id.
func (p *KafkaPublisher) Publish(ctx context.Context, event RideRequestEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write %s event: %w", event.Topic, err)
	}
	return nil
}

// Close flushes pending writes and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(event RideRequestEvent) (kafkago.Message, error) {
	if event.Topic == "" {
		return kafkago.Message{}, fmt.Errorf("event has no topic")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("failed to encode %s event: %w", event.Topic, err)
	}
	return kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.Key()),
		Value: data,
		Time:  event.OccurredAt,
	}, nil
}
