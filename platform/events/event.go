// Package events carries the in-process bus that connects the asset,
// application and lease modules to their side effects (notification mail,
// logging). Event types themselves live in internal/events.
package events

import (
	"context"
	"time"
)

// Event is anything published on the bus. EventName is the subscription
// key, e.g. "applications.reviewed".
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent stamps an event with its UTC publication time.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns the stamped time.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps now in UTC.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now().UTC()}
}

// Handler reacts to one kind of event, such as mailing an applicant
// when their application is decided.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes events by name to subscribers.
type Bus interface {
	// Publish fans out in the background after a write commits. Handler
	// errors are logged, not returned.
	Publish(ctx context.Context, event Event)

	// PublishSync runs subscribers in order and returns their joined errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers handler under eventName.
	Subscribe(eventName string, handler Handler)
}
