package bus

import (
	"sync"
	"testing"

	"statusbus/internal/domain/events"
	"statusbus/internal/testutil"
)

func TestRegistry_New(t *testing.T) {
	r := New()

	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.subs == nil {
		t.Error("subs map is nil")
	}
	if r.EventCount() != 0 {
		t.Errorf("EventCount() = %d, want 0", r.EventCount())
	}
}

func TestRegistry_SubscribeAndPublish(t *testing.T) {
	r := New()
	sub := testutil.NewMockSubscriber("sub-1")

	r.Subscribe(events.EventNetworkConnection, sub)

	if r.SubscriberCount(events.EventNetworkConnection) != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", r.SubscriberCount(events.EventNetworkConnection))
	}

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	if sub.NotifyCount() != 1 {
		t.Fatalf("subscriber received %d deliveries, want 1", sub.NotifyCount())
	}
	got := sub.Payloads()[0][events.KeyNetworkStatus]
	if got != "connected" {
		t.Errorf("delivered status = %q, want %q", got, "connected")
	}
}

func TestRegistry_SubscribeIdempotent(t *testing.T) {
	r := New()
	sub := testutil.NewMockSubscriber("sub-1")

	r.Subscribe(events.EventNetworkConnection, sub)
	r.Subscribe(events.EventNetworkConnection, sub)

	if r.SubscriberCount(events.EventNetworkConnection) != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", r.SubscriberCount(events.EventNetworkConnection))
	}

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	if sub.NotifyCount() != 1 {
		t.Errorf("subscriber received %d deliveries after double subscribe, want 1", sub.NotifyCount())
	}
}

func TestRegistry_UnsubscribedIsSilent(t *testing.T) {
	r := New()
	sub := testutil.NewMockSubscriber("sub-1")

	r.Subscribe(events.EventNetworkConnection, sub)
	r.Unsubscribe(events.EventNetworkConnection, sub)

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusError))

	if sub.NotifyCount() != 0 {
		t.Errorf("unsubscribed subscriber received %d deliveries, want 0", sub.NotifyCount())
	}
}

func TestRegistry_UnsubscribeIdempotent(t *testing.T) {
	r := New()
	sub := testutil.NewMockSubscriber("sub-1")

	// Never subscribed: must be a no-op, not a fault.
	r.Unsubscribe(events.EventNetworkConnection, sub)

	r.Subscribe(events.EventNetworkConnection, sub)
	r.Unsubscribe(events.EventNetworkConnection, sub)
	r.Unsubscribe(events.EventNetworkConnection, sub)

	if r.SubscriberCount(events.EventNetworkConnection) != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", r.SubscriberCount(events.EventNetworkConnection))
	}
}

func TestRegistry_PublishWithNoSubscribers(t *testing.T) {
	r := New()

	// Valid no-op, must not panic.
	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))
}

func TestRegistry_IsolationAcrossEvents(t *testing.T) {
	r := New()
	netSub := testutil.NewMockSubscriber("net")
	fileSub := testutil.NewMockSubscriber("file")

	r.Subscribe(events.EventNetworkConnection, netSub)
	r.Subscribe(events.EventFileActivity, fileSub)

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	if netSub.NotifyCount() != 1 {
		t.Errorf("network subscriber received %d deliveries, want 1", netSub.NotifyCount())
	}
	if fileSub.NotifyCount() != 0 {
		t.Errorf("file subscriber received %d deliveries, want 0", fileSub.NotifyCount())
	}
}

func TestRegistry_PublishToMultipleSubscribers(t *testing.T) {
	r := New()
	subs := []*testutil.MockSubscriber{
		testutil.NewMockSubscriber("sub-1"),
		testutil.NewMockSubscriber("sub-2"),
		testutil.NewMockSubscriber("sub-3"),
	}
	for _, sub := range subs {
		r.Subscribe(events.EventNetworkConnection, sub)
	}

	for i := 0; i < 5; i++ {
		r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnecting))
	}

	for _, sub := range subs {
		if sub.NotifyCount() != 5 {
			t.Errorf("subscriber %s received %d deliveries, want 5", sub.ID(), sub.NotifyCount())
		}
	}
}

func TestRegistry_SubscribeDuringDeliveryTakesEffectNextPublish(t *testing.T) {
	r := New()
	late := testutil.NewMockSubscriber("late")
	first := testutil.NewMockSubscriber("first")
	first.SetNotifyFunc(func(events.Payload) {
		r.Subscribe(events.EventNetworkConnection, late)
	})

	r.Subscribe(events.EventNetworkConnection, first)

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	// The snapshot was taken before "late" joined.
	if late.NotifyCount() != 0 {
		t.Errorf("mid-delivery subscriber received %d deliveries, want 0", late.NotifyCount())
	}

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusDisconnected))

	if late.NotifyCount() != 1 {
		t.Errorf("mid-delivery subscriber received %d deliveries on next publish, want 1", late.NotifyCount())
	}
}

func TestRegistry_UnsubscribeSelfDuringDelivery(t *testing.T) {
	r := New()
	sub := testutil.NewMockSubscriber("self-remover")
	sub.SetNotifyFunc(func(events.Payload) {
		r.Unsubscribe(events.EventNetworkConnection, sub)
	})

	r.Subscribe(events.EventNetworkConnection, sub)

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	if sub.NotifyCount() != 1 {
		t.Fatalf("subscriber received %d deliveries, want 1", sub.NotifyCount())
	}

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusError))

	if sub.NotifyCount() != 1 {
		t.Errorf("subscriber received %d deliveries after self-unsubscribe, want 1", sub.NotifyCount())
	}
}

func TestRegistry_ReentrantPublish(t *testing.T) {
	r := New()
	fileSub := testutil.NewMockSubscriber("file")
	netSub := testutil.NewMockSubscriber("net")
	netSub.SetNotifyFunc(func(events.Payload) {
		// A reaction hook that broadcasts on another channel must not
		// deadlock.
		r.Publish(events.EventFileActivity, events.NewFilePayload("write"))
	})

	r.Subscribe(events.EventNetworkConnection, netSub)
	r.Subscribe(events.EventFileActivity, fileSub)

	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	if fileSub.NotifyCount() != 1 {
		t.Errorf("file subscriber received %d deliveries, want 1", fileSub.NotifyCount())
	}
}

func TestRegistry_PanicContainment(t *testing.T) {
	r := New()
	panicking := testutil.NewMockSubscriber("panicking")
	panicking.SetPanic("boom")
	good := testutil.NewMockSubscriber("good")

	r.Subscribe(events.EventNetworkConnection, panicking)
	r.Subscribe(events.EventNetworkConnection, good)

	// Must not propagate the panic to the broadcaster.
	r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))

	if good.NotifyCount() != 1 {
		t.Errorf("good subscriber received %d deliveries, want 1", good.NotifyCount())
	}
}

func TestRegistry_EmptyEntryIsRemoved(t *testing.T) {
	r := New()
	sub := testutil.NewMockSubscriber("sub-1")

	r.Subscribe(events.EventNetworkConnection, sub)
	if r.EventCount() != 1 {
		t.Fatalf("EventCount() = %d, want 1", r.EventCount())
	}

	r.Unsubscribe(events.EventNetworkConnection, sub)
	if r.EventCount() != 0 {
		t.Errorf("EventCount() after last unsubscribe = %d, want 0", r.EventCount())
	}
}

func TestRegistry_ConcurrentOperations(t *testing.T) {
	r := New()
	numGoroutines := 10
	numPublishes := 100

	subs := make([]*testutil.MockSubscriber, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		subs[i] = testutil.NewMockSubscriber(string(rune('a' + i)))
		r.Subscribe(events.EventNetworkConnection, subs[i])
	}

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numPublishes; j++ {
				r.Publish(events.EventNetworkConnection, events.NewNetworkPayload(events.StatusConnected))
			}
		}()
	}
	wg.Wait()

	expected := numGoroutines * numPublishes
	for _, sub := range subs {
		if sub.NotifyCount() != expected {
			t.Errorf("subscriber %s received %d deliveries, want %d", sub.ID(), sub.NotifyCount(), expected)
		}
	}
}
