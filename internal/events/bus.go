// Package events is a small in-process pub-sub bus bridging the scanner to
// the websocket hub without an import cycle.
package events

import (
	"sync"
	"time"
)

// EventType labels the events the service emits.
type EventType string

const (
	EventAnalysisCompleted EventType = "ANALYSIS_COMPLETED"
	EventScanCompleted     EventType = "SCAN_COMPLETED"
	EventError             EventType = "ERROR"
)

// Event is one published occurrence.
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Subscriber handles a published event. Subscribers run on their own
// goroutine per event and must tolerate concurrent delivery.
type Subscriber func(Event)

// Bus fans events out to subscribers by type.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Subscriber
	allSubs     []Subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[EventType][]Subscriber),
	}
}

// Subscribe registers a subscriber for one event type.
func (b *Bus) Subscribe(eventType EventType, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], sub)
}

// SubscribeAll registers a subscriber for every event.
func (b *Bus) SubscribeAll(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allSubs = append(b.allSubs, sub)
}

// Publish delivers the event to matching subscribers. Delivery is
// asynchronous so a slow subscriber never blocks the publisher.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	for _, sub := range b.subscribers[event.Type] {
		go sub(event)
	}
	for _, sub := range b.allSubs {
		go sub(event)
	}
}

// PublishAnalysisCompleted publishes one symbol's finished analysis.
func (b *Bus) PublishAnalysisCompleted(symbol, timeframe, overallSignal string, netScore float64) {
	b.Publish(Event{
		Type: EventAnalysisCompleted,
		Data: map[string]interface{}{
			"symbol":         symbol,
			"timeframe":      timeframe,
			"overall_signal": overallSignal,
			"net_score":      netScore,
		},
	})
}

// PublishScanCompleted publishes a finished scan cycle.
func (b *Bus) PublishScanCompleted(scanID string, symbols, failures int, elapsed time.Duration) {
	b.Publish(Event{
		Type: EventScanCompleted,
		Data: map[string]interface{}{
			"scan_id":    scanID,
			"symbols":    symbols,
			"failures":   failures,
			"elapsed_ms": elapsed.Milliseconds(),
		},
	})
}

// PublishError publishes a component failure.
func (b *Bus) PublishError(source, message string, err error) {
	data := map[string]interface{}{
		"source":  source,
		"message": message,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	b.Publish(Event{Type: EventError, Data: data})
}
