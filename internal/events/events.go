package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrders = "order_events"
	TopicCart   = "cart_events"

	OrderPlaced = "order_placed"
	CartUpdated = "cart_updated"

	producerName = "storefront"
)

// Envelope is the common wrapper for every event the storefront emits.
type Envelope[T any] struct {
	EventName    string    `json:"eventName"`
	EventVersion int       `json:"eventVersion"`
	EventID      string    `json:"eventId"`
	Producer     string    `json:"producer"`
	PartitionKey string    `json:"partitionKey"`
	OccurredAt   time.Time `json:"occurredAt"`
	Payload      T         `json:"payload"`
}

func New[T any](name, key string, payload T) Envelope[T] {
	return Envelope[T]{
		EventName:    name,
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producerName,
		PartitionKey: key,
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}
}

func (e Envelope[T]) Validate(expectedName string) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	return nil
}

// Publisher delivers an event to a topic, keyed for partitioning.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }
