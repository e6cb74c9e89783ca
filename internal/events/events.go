// Package events publishes ride request lifecycle events.
package events

import (
	"context"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/model"
)

// Topic names, one per lifecycle transition.
const (
	TopicRideRequestCreated = "ride-request.created"
	TopicRideRequestUpdated = "ride-request.updated"
	TopicRideRequestDeleted = "ride-request.deleted"
)

// RideRequestEvent is the payload written for every ride request change.
type RideRequestEvent struct {
	Topic       string            `json:"-"`
	ActorID     string            `json:"actorId"`
	RideRequest model.RideRequest `json:"rideRequest"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

// NewRideRequestEvent stamps an event for rr with the current time.
func NewRideRequestEvent(topic, actorID string, rr model.RideRequest) RideRequestEvent {
	return RideRequestEvent{
		Topic:       topic,
		ActorID:     actorID,
		RideRequest: rr,
		OccurredAt:  time.Now().UTC(),
	}
}

// Key is the partition key; all events for one ride request stay ordered.
func (e RideRequestEvent) Key() string {
	return e.RideRequest.ID
}

// Publisher delivers events to a broker
type Publisher interface {
	Publish(ctx context.Context, event RideRequestEvent) error
	Close() error
}

// New returns a Kafka publisher for brokers, or a no-op publisher when none are configured.
func New(brokers []string) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers)
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, RideRequestEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
