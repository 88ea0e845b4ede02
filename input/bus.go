package input

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Handler receives published events.
type Handler func(Event)

// Subscription identifies a registered handler for Unsubscribe.
type Subscription struct {
	id   uint64
	name Name
}

// Name returns the event name the subscription listens to, or "" for all events.
func (s Subscription) Name() Name { return s.name }

// BusStats holds delivery counters.
type BusStats struct {
	Published uint64
	Delivered uint64
	Panics    uint64
}

type subscriber struct {
	id      uint64
	name    Name
	all     bool
	handler Handler
}

// Bus is a synchronous publish/subscribe dispatcher. Handlers run on the
// publishing goroutine in registration order. A panicking handler is
// recovered and logged; the remaining handlers still receive the event.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscriber
	logger *slog.Logger

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// NewBus returns an empty bus. A nil logger falls back to slog.Default().
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers h for events named name.
func (b *Bus) Subscribe(name Name, h Handler) Subscription {
	return b.add(subscriber{name: name, handler: h})
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) Subscription {
	return b.add(subscriber{all: true, handler: h})
}

func (b *Bus) add(s subscriber) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s.id = b.nextID
	b.subs = append(b.subs, s)
	return Subscription{id: s.id, name: s.name}
}

// Unsubscribe removes a subscription. Returns false if it was not registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers ev to every matching subscriber before returning.
func (b *Bus) Publish(ev Event) {
	b.published.Add(1)

	name := ev.Name()
	b.mu.RLock()
	targets := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if s.all || s.name == name {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range targets {
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			b.logger.Error("event handler panicked",
				"event", string(ev.Name()),
				"subscription", s.id,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	s.handler(ev)
	b.delivered.Add(1)
}

// Len returns the number of registered subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Stats returns a snapshot of the delivery counters.
func (b *Bus) Stats() BusStats {
	return BusStats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Panics:    b.panics.Load(),
	}
}
