// Package testutil provides shared test utilities and mocks for
// statusbus tests.
package testutil

import (
	"sync"

	"statusbus/internal/domain/events"
	"statusbus/internal/domain/ports"
)

// MockSubscriber implements ports.Subscriber for testing.
type MockSubscriber struct {
	id string

	mu        sync.Mutex
	payloads  []events.Payload
	notifyFn  func(events.Payload)
	panicWith any
}

// NewMockSubscriber creates a new mock subscriber.
func NewMockSubscriber(id string) *MockSubscriber {
	return &MockSubscriber{
		id:       id,
		payloads: make([]events.Payload, 0),
	}
}

// ID returns the subscriber ID.
func (m *MockSubscriber) ID() string {
	return m.id
}

// OnNotify records the payload, runs any configured callback, and
// panics if configured to.
func (m *MockSubscriber) OnNotify(payload events.Payload) {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	notifyFn := m.notifyFn
	panicWith := m.panicWith
	m.mu.Unlock()

	if notifyFn != nil {
		notifyFn(payload)
	}
	if panicWith != nil {
		panic(panicWith)
	}
}

// Payloads returns all received payloads.
func (m *MockSubscriber) Payloads() []events.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]events.Payload, len(m.payloads))
	copy(result, m.payloads)
	return result
}

// NotifyCount returns the number of deliveries received.
func (m *MockSubscriber) NotifyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payloads)
}

// SetNotifyFunc sets a callback invoked on every delivery.
func (m *MockSubscriber) SetNotifyFunc(fn func(events.Payload)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifyFn = fn
}

// SetPanic configures OnNotify to panic with v after recording.
func (m *MockSubscriber) SetPanic(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicWith = v
}

// Ensure MockSubscriber implements ports.Subscriber.
var _ ports.Subscriber = (*MockSubscriber)(nil)

// MockBus implements ports.EventBus for testing.
type MockBus struct {
	mu           sync.Mutex
	subscribed   map[events.EventName][]ports.Subscriber
	unsubscribed map[events.EventName][]ports.Subscriber
	published    []PublishedEvent
}

// PublishedEvent records one Publish call.
type PublishedEvent struct {
	Event   events.EventName
	Payload events.Payload
}

// NewMockBus creates a new mock bus.
func NewMockBus() *MockBus {
	return &MockBus{
		subscribed:   make(map[events.EventName][]ports.Subscriber),
		unsubscribed: make(map[events.EventName][]ports.Subscriber),
	}
}

// Subscribe records the subscription.
func (m *MockBus) Subscribe(event events.EventName, sub ports.Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribed[event] = append(m.subscribed[event], sub)
}

// Unsubscribe records the removal.
func (m *MockBus) Unsubscribe(event events.EventName, sub ports.Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unsubscribed[event] = append(m.unsubscribed[event], sub)
}

// Publish records the event and delivers it to recorded subscribers.
func (m *MockBus) Publish(event events.EventName, payload events.Payload) {
	m.mu.Lock()
	m.published = append(m.published, PublishedEvent{Event: event, Payload: payload})
	subs := make([]ports.Subscriber, len(m.subscribed[event]))
	copy(subs, m.subscribed[event])
	m.mu.Unlock()

	for _, sub := range subs {
		sub.OnNotify(payload)
	}
}

// SubscriberCount returns the number of recorded subscriptions for event.
func (m *MockBus) SubscriberCount(event events.EventName) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribed[event])
}

// Subscribed returns the subscribers recorded for event.
func (m *MockBus) Subscribed(event events.EventName) []ports.Subscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ports.Subscriber, len(m.subscribed[event]))
	copy(result, m.subscribed[event])
	return result
}

// Unsubscribed returns the subscribers removed for event.
func (m *MockBus) Unsubscribed(event events.EventName) []ports.Subscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ports.Subscriber, len(m.unsubscribed[event]))
	copy(result, m.unsubscribed[event])
	return result
}

// Published returns all recorded Publish calls.
func (m *MockBus) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]PublishedEvent, len(m.published))
	copy(result, m.published)
	return result
}

// Ensure MockBus implements ports.EventBus.
var _ ports.EventBus = (*MockBus)(nil)
