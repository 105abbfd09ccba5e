// Package events decouples fetch lifecycle notifications from any consumer.
// The executor publishes loading/success/error broadcasts; subscribers (an
// HTTP layer, tests) observe them passively and can never block or fail a
// fetch.
package events

import "sync"

// Type identifies a lifecycle notification.
type Type string

const (
	TypeLoading Type = "loading"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Event carries the resource identifier a notification refers to and,
// for failures, the error message.
type Event struct {
	Type     Type
	Resource string
	Err      string
}

// Bus is a minimal fan-out broadcaster. Handlers run synchronously in
// subscription order; a handler must not call back into the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the event to every subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}

// Loading announces that a fetch for resource has started.
func (b *Bus) Loading(resource string) {
	b.Publish(Event{Type: TypeLoading, Resource: resource})
}

// Success announces that a fetch for resource completed.
func (b *Bus) Success(resource string) {
	b.Publish(Event{Type: TypeSuccess, Resource: resource})
}

// Error announces that a fetch for resource failed after all retries.
func (b *Bus) Error(resource string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	b.Publish(Event{Type: TypeError, Resource: resource, Err: msg})
}
