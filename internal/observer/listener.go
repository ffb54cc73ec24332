// Package observer implements the listener and subject halves of the
// notification relay. Listeners register with an event registry on
// creation and react to delivered payloads; subjects broadcast status
// changes without knowing who is listening.
package observer

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"statusbus/internal/domain"
	"statusbus/internal/domain/events"
	"statusbus/internal/domain/ports"
	"statusbus/internal/sync"
)

// Handler reacts to a listener's status change. The listener's Status
// is already updated when HandleChange runs. Every concrete listener
// variant supplies a Handler; there is no overridable default to
// forget, the compiler enforces the contract.
type Handler interface {
	HandleChange(l *Listener)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(l *Listener)

// HandleChange calls f(l).
func (f HandlerFunc) HandleChange(l *Listener) {
	f(l)
}

// Listener observes one event channel and tracks the last value seen
// for its watched payload key.
type Listener struct {
	id      string
	event   events.EventName
	key     events.PayloadKey
	handler Handler
	bus     ports.EventBus

	// mu protects status and disposed
	mu       sync.Mutex
	status   string
	disposed bool
}

// NewListener creates a listener watching key on event and subscribes
// it to bus immediately. The status starts at events.StatusUnknown
// until the first delivery arrives.
func NewListener(bus ports.EventBus, event events.EventName, key events.PayloadKey, handler Handler) (*Listener, error) {
	if bus == nil {
		return nil, domain.ErrNilRegistry
	}
	if handler == nil {
		return nil, domain.ErrNilHandler
	}

	l := &Listener{
		id:      uuid.New().String(),
		event:   event,
		key:     key,
		handler: handler,
		bus:     bus,
		status:  events.StatusUnknown,
	}

	bus.Subscribe(event, l)

	log.Debug().
		Str("listener_id", l.id).
		Str("event", string(event)).
		Str("key", string(key)).
		Msg("listener created")

	return l, nil
}

// ID returns the listener's unique identifier.
func (l *Listener) ID() string {
	return l.id
}

// Event returns the event channel this listener watches.
func (l *Listener) Event() events.EventName {
	return l.event
}

// Key returns the payload key this listener reads.
func (l *Listener) Key() events.PayloadKey {
	return l.key
}

// Status returns the last value delivered to this listener, or
// events.StatusUnknown if nothing has arrived yet.
func (l *Listener) Status() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Disposed reports whether Dispose has been called.
func (l *Listener) Disposed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.disposed
}

// OnNotify is the delivery entry point invoked by the registry. If the
// payload lacks this listener's watched key the delivery is not
// relevant and nothing happens. Otherwise the status is updated
// strictly before the handler runs.
func (l *Listener) OnNotify(payload events.Payload) {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	v, ok := payload[l.key]
	if !ok {
		l.mu.Unlock()
		return
	}
	l.status = v
	l.mu.Unlock()

	l.handler.HandleChange(l)
}

// Dispose unsubscribes the listener from its registry. Calling it more
// than once is a safe no-op. A disposed listener never receives
// further deliveries.
func (l *Listener) Dispose() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.disposed = true
	l.mu.Unlock()

	l.bus.Unsubscribe(l.event, l)

	log.Debug().
		Str("listener_id", l.id).
		Str("event", string(l.event)).
		Msg("listener disposed")
}

// Ensure Listener implements ports.Subscriber.
var _ ports.Subscriber = (*Listener)(nil)
