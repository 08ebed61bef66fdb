// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadscout_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Search Domain Events
// =============================================================================

// SearchCompleted is published after a search settles, whether or not it
// produced results.
type SearchCompleted struct {
	BaseEvent
	ClientID    string   `json:"clientId"`
	City        string   `json:"city"`
	Categories  []string `json:"categories"`
	RadiusKm    float64  `json:"radiusKm"`
	ResultCount int      `json:"resultCount"`
	Status      string   `json:"status"`
	DurationMs  int64    `json:"durationMs"`
}

func (e SearchCompleted) EventName() string { return "search.completed" }
