// Package bus implements the central event registry for statusbus.
package bus

import (
	"github.com/rs/zerolog/log"

	"statusbus/internal/domain/events"
	"statusbus/internal/domain/ports"
	"statusbus/internal/sync"
)

// Registry is the central dispatcher mapping event names to their
// subscriber sets. It is an explicit instance rather than a process
// global, so tests and embedders can run isolated registries.
type Registry struct {
	// mu protects subs. A single registry-wide lock is enough here:
	// contention is low and every operation is O(subscribers-per-event).
	mu sync.Mutex

	// subs maps an event name to its subscribers, keyed by subscriber ID.
	// Keying by ID makes subscribe idempotent and unsubscribe a no-op
	// for unknown members.
	subs map[events.EventName]map[string]ports.Subscriber
}

// New creates a new Registry with no subscriptions.
func New() *Registry {
	return &Registry{
		subs: make(map[events.EventName]map[string]ports.Subscriber),
	}
}

// Subscribe adds sub to the set for event, creating the entry lazily.
// Subscribing an already-subscribed subscriber has no additional effect.
func (r *Registry) Subscribe(event events.EventName, sub ports.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.subs[event]
	if set == nil {
		set = make(map[string]ports.Subscriber)
		r.subs[event] = set
	}

	if _, ok := set[sub.ID()]; ok {
		return
	}
	set[sub.ID()] = sub

	log.Debug().
		Str("event", string(event)).
		Str("subscriber_id", sub.ID()).
		Msg("subscriber registered")
}

// Unsubscribe removes sub from the set for event. Removing a
// non-member is a no-op, so disposal logic may call this repeatedly.
func (r *Registry) Unsubscribe(event events.EventName, sub ports.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.subs[event]
	if set == nil {
		return
	}
	if _, ok := set[sub.ID()]; !ok {
		return
	}

	delete(set, sub.ID())
	if len(set) == 0 {
		delete(r.subs, event)
	}

	log.Debug().
		Str("event", string(event)).
		Str("subscriber_id", sub.ID()).
		Msg("subscriber unregistered")
}

// Publish delivers payload to every subscriber currently registered
// for event. The subscriber set is snapshotted before iteration, so a
// subscribe or unsubscribe triggered from inside a reaction hook takes
// effect only for subsequent publishes. Iteration order between
// subscribers is unspecified. Publishing with no subscribers is valid.
func (r *Registry) Publish(event events.EventName, payload events.Payload) {
	r.mu.Lock()
	set := r.subs[event]
	snapshot := make([]ports.Subscriber, 0, len(set))
	for _, sub := range set {
		snapshot = append(snapshot, sub)
	}
	r.mu.Unlock()

	if len(snapshot) == 0 {
		log.Trace().
			Str("event", string(event)).
			Msg("event published with no subscribers")
		return
	}

	for _, sub := range snapshot {
		r.deliver(event, sub, payload)
	}

	log.Trace().
		Str("event", string(event)).
		Int("subscribers", len(snapshot)).
		Msg("event published")
}

// deliver invokes one subscriber, containing any panic from its
// reaction hook so a failing listener never aborts delivery to the
// rest of the snapshot or reaches the broadcaster.
func (r *Registry) deliver(event events.EventName, sub ports.Subscriber, payload events.Payload) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Warn().
				Str("event", string(event)).
				Str("subscriber_id", sub.ID()).
				Interface("panic", rec).
				Msg("subscriber panicked during delivery")
		}
	}()

	sub.OnNotify(payload)
}

// SubscriberCount returns the number of subscribers for event.
func (r *Registry) SubscriberCount(event events.EventName) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[event])
}

// EventCount returns the number of event names with at least one
// subscriber.
func (r *Registry) EventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Ensure Registry implements ports.EventBus.
var _ ports.EventBus = (*Registry)(nil)
