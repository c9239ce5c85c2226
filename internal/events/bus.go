package events

import (
	"sync"

	"github.com/charleschow/soccer-props/internal/telemetry"
)

// Handler processes an event. Returning an error logs it but does not stop dispatch.
type Handler func(Event) error

// Bus is a synchronous in-process event bus.
// Subscribers are invoked in registration order on the publisher's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish dispatches an event to all registered handlers for its type and
// returns how many of them failed.
func (b *Bus) Publish(e Event) int {
	b.mu.RLock()
	handlers := b.handlers[e.Type]
	b.mu.RUnlock()

	failed := 0
	for i, h := range handlers {
		if err := h(e); err != nil {
			failed++
			telemetry.Warnf("bus: handler %d for %s failed: %v", i, e.Type, err)
		}
	}
	return failed
}
