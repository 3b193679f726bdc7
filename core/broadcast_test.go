package live

import (
	"testing"

	"github.com/avelinek/lira-core/core/events"
)

func TestBroadcastInvokesHandlersInRegistrationOrder(t *testing.T) {
	var b broadcaster

	var order []int
	b.subscribe(func(events.Event) { order = append(order, 1) })
	b.subscribe(func(events.Event) { order = append(order, 2) })
	b.subscribe(func(events.Event) { order = append(order, 3) })

	b.publish(events.NewTurnComplete())

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected handlers in registration order, got %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	var b broadcaster

	var calls int
	unsubscribe := b.subscribe(func(events.Event) { calls++ })

	b.publish(events.NewTurnComplete())
	unsubscribe()
	b.publish(events.NewTurnComplete())

	if calls != 1 {
		t.Fatalf("expected exactly one delivery, got %d", calls)
	}
}

func TestUnsubscribeDuringDispatchIsSafe(t *testing.T) {
	var b broadcaster

	var unsubscribe func()
	var selfCalls, otherCalls int
	unsubscribe = b.subscribe(func(events.Event) {
		selfCalls++
		unsubscribe()
	})
	b.subscribe(func(events.Event) { otherCalls++ })

	b.publish(events.NewTurnComplete())
	b.publish(events.NewTurnComplete())

	if selfCalls != 1 {
		t.Fatalf("expected self-unsubscribing handler to run once, got %d", selfCalls)
	}
	if otherCalls != 2 {
		t.Fatalf("expected remaining handler to keep receiving, got %d", otherCalls)
	}
}

func TestSubscribeDuringDispatchMissesInFlightEvent(t *testing.T) {
	var b broadcaster

	var lateCalls int
	b.subscribe(func(events.Event) {
		b.subscribe(func(events.Event) { lateCalls++ })
	})

	b.publish(events.NewTurnComplete())
	if lateCalls != 0 {
		t.Fatalf("expected mid-dispatch subscriber to miss the in-flight event, got %d calls", lateCalls)
	}

	b.publish(events.NewTurnComplete())
	if lateCalls != 1 {
		t.Fatalf("expected mid-dispatch subscriber to receive later events, got %d calls", lateCalls)
	}
}
