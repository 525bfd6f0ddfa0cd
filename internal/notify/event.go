// Package notify fans out change events to registered listeners. Events are
// fire-and-observe: delivery happens synchronously after the originating
// operation has already committed, and a misbehaving listener can never
// change the outcome of that operation.
package notify

import "time"

// Event describes a committed mutation. Concrete events live in the domain
// packages and satisfy this interface structurally.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	Message() string
}

// Listener consumes change events. Implementations should be idempotent with
// respect to duplicate delivery and must not block indefinitely.
type Listener interface {
	Notify(event Event) error
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(event Event) error

// Notify implements Listener.
func (f ListenerFunc) Notify(event Event) error {
	return f(event)
}
