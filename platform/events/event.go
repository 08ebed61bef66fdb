// Package events provides the in-process event infrastructure the domain
// modules communicate over. Concrete event types (like the search context's
// completion event) live with the modules in internal/events; this package
// only defines the contract and the bus.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName returns the routing key handlers subscribe under.
	EventName() string
	// OccurredAt returns when the event was created.
	OccurredAt() time.Time
}

// BaseEvent carries the creation timestamp; embed it in concrete events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event was created.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a new base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to subscribed handlers.
type Bus interface {
	// Publish dispatches to every handler subscribed under the event's name.
	// Dispatch is asynchronous; publishers never block on handlers.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches inline and returns the first handler error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an event name, as returned by
	// Event.EventName().
	Subscribe(eventName string, handler Handler)
}
