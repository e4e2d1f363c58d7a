package events

import (
	"time"
)

// DomainEvent represents a domain event interface
type DomainEvent interface {
	// GetAggregateID returns the ID of the aggregate that generated the event
	GetAggregateID() string

	// GetEventType returns the type/name of the event
	GetEventType() string

	// GetOccurredAt returns when the event occurred
	GetOccurredAt() time.Time
}

// BaseEvent provides common fields for all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewBaseEvent(aggregateID, eventType string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  occurredAt,
	}
}

func (e BaseEvent) GetAggregateID() string {
	return e.AggregateID
}

func (e BaseEvent) GetEventType() string {
	return e.EventType
}

func (e BaseEvent) GetOccurredAt() time.Time {
	return e.OccurredAt
}

// EventHandler represents a handler for domain events
type EventHandler interface {
	Handle(event DomainEvent) error
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(DomainEvent) error

func (f HandlerFunc) Handle(event DomainEvent) error {
	return f(event)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event DomainEvent) error
}

// EventDispatcher combines publishing with handler registration and lifecycle.
type EventDispatcher interface {
	EventPublisher
	Subscribe(eventType string, handler EventHandler) error
	Start() error
	Stop() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(DomainEvent) error { return nil }
