package event

import (
	"context"
	"sync"
)

// Bus fans events out to subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[EventType][]Handler
	all  []Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]Handler)}
}

// Subscribe registers handler for a single event type.
func (b *Bus) Subscribe(t EventType, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], handler)
}

// SubscribeAll registers handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, handler)
}

// Emit delivers evt to the type's subscribers, then to catch-all subscribers.
func (b *Bus) Emit(ctx context.Context, evt Event) {
	b.mu.RLock()
	handlers := append([]Handler{}, b.subs[evt.Type]...)
	all := append([]Handler{}, b.all...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, evt)
	}
	for _, h := range all {
		h(ctx, evt)
	}
}
