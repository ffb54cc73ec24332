package ports

import (
	"statusbus/internal/domain/events"
)

// Subscriber represents one registered listener endpoint.
type Subscriber interface {
	// ID returns a unique identifier for this subscriber.
	ID() string

	// OnNotify delivers a payload to this subscriber. Implementations
	// that do not recognize any key in the payload must treat the
	// delivery as a no-op.
	OnNotify(payload events.Payload)
}

// Publisher is the broadcast side of the event bus. Subjects depend on
// this interface only; they never see who is listening.
type Publisher interface {
	// Publish delivers payload to every subscriber currently
	// registered for event. Synchronous; returns after all current
	// subscribers have been processed.
	Publish(event events.EventName, payload events.Payload)
}

// EventBus defines the contract for subscription and dispatch.
type EventBus interface {
	Publisher

	// Subscribe adds sub to the set for event. Idempotent.
	Subscribe(event events.EventName, sub Subscriber)

	// Unsubscribe removes sub from the set for event. No-op if absent.
	Unsubscribe(event events.EventName, sub Subscriber)

	// SubscriberCount returns the number of subscribers for event.
	SubscriberCount(event events.EventName) int
}
