package events

import "sync"

// Bus is an in-process event bus. Publish invokes every handler registered
// for the event on the caller's goroutine before returning, so a write and
// its notifications form one synchronous unit. Handlers registered after a
// Publish do not receive it retroactively.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func()
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]map[int]func()),
	}
}

// Subscribe registers a handler for the event and returns a function that
// removes it. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(event string, handler func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[event] == nil {
		b.subs[event] = make(map[int]func())
	}

	id := b.nextID
	b.nextID++
	b.subs[event][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[event], id)
	}
}

// Publish calls every handler currently registered for the event. There is
// no ordering guarantee between handlers.
func (b *Bus) Publish(event string) {
	b.mu.RLock()
	handlers := make([]func(), 0, len(b.subs[event]))
	for _, h := range b.subs[event] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h()
	}
}
