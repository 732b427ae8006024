package events

import (
	"sync"
	"testing"
	"time"
)

func TestSubscribeReceivesMatchingType(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{}, 1)

	bus.Subscribe(EventScanCompleted, func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		done <- struct{}{}
	})

	bus.PublishScanCompleted("abc", 4, 1, 250*time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("received %d events, want 1", len(got))
	}
	if got[0].Type != EventScanCompleted {
		t.Errorf("Type = %s, want %s", got[0].Type, EventScanCompleted)
	}
	if got[0].Data["scan_id"] != "abc" {
		t.Errorf("scan_id = %v, want abc", got[0].Data["scan_id"])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("Publish should stamp the event")
	}
}

func TestSubscriberIgnoresOtherTypes(t *testing.T) {
	bus := NewBus()

	received := make(chan Event, 1)
	bus.Subscribe(EventError, func(e Event) {
		received <- e
	})

	bus.PublishAnalysisCompleted("BTCUSDT", "1h", "BUY", 0.4)

	select {
	case e := <-received:
		t.Fatalf("error subscriber received %s", e.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus()

	received := make(chan EventType, 3)
	bus.SubscribeAll(func(e Event) {
		received <- e.Type
	})

	bus.PublishAnalysisCompleted("BTCUSDT", "1h", "BUY", 0.4)
	bus.PublishError("scanner", "fetch failed", nil)

	seen := map[EventType]bool{}
	for i := 0; i < 2; i++ {
		select {
		case et := <-received:
			seen[et] = true
		case <-time.After(time.Second):
			t.Fatal("all-events subscriber missed an event")
		}
	}

	if !seen[EventAnalysisCompleted] || !seen[EventError] {
		t.Errorf("saw %v, want both event types", seen)
	}
}
