package observer

import (
	"statusbus/internal/domain/events"
	"statusbus/internal/domain/ports"
)

// Subject broadcasts status changes under one event name. It holds no
// references to listeners; the publisher it was constructed with is
// the sole intermediary. Subject and listener share only an event
// name and payload key contract.
type Subject struct {
	event events.EventName
	key   events.PayloadKey
	pub   ports.Publisher
}

// NewSubject creates a subject broadcasting on event with payloads
// keyed by key.
func NewSubject(pub ports.Publisher, event events.EventName, key events.PayloadKey) *Subject {
	return &Subject{
		event: event,
		key:   key,
		pub:   pub,
	}
}

// Event returns the event channel this subject broadcasts on.
func (s *Subject) Event() events.EventName {
	return s.event
}

// Key returns the payload key this subject writes.
func (s *Subject) Key() events.PayloadKey {
	return s.key
}

// Notify broadcasts a status change. Synchronous: it returns once
// every subscriber registered at call time has been processed.
// Fire-and-forget; delivery failures in individual listeners are
// contained by the registry and never surface here.
func (s *Subject) Notify(status string) {
	s.pub.Publish(s.event, events.Payload{s.key: status})
}
