package notify

import (
	"fmt"
	"log/slog"
	"sync"
)

// Notifier is a thread-safe listener registry with synchronous, in-order
// delivery. Publish iterates a snapshot of the registration list, so
// subscribing or unsubscribing during delivery cannot corrupt iteration.
type Notifier struct {
	mu        sync.Mutex
	listeners []*registration
	nextID    int64
	logger    *slog.Logger
}

type registration struct {
	id       int64
	listener Listener
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger used to report listener failures.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// NewNotifier builds an empty notifier.
func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners receive events in subscription order.
func (n *Notifier) Subscribe(listener Listener) func() {
	if listener == nil {
		return func() {}
	}
	n.mu.Lock()
	n.nextID++
	reg := &registration{id: n.nextID, listener: listener}
	n.listeners = append(n.listeners, reg)
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, candidate := range n.listeners {
			if candidate.id == reg.id {
				n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event synchronously to every currently-registered
// listener. A listener error or panic is logged and delivery continues with
// the next listener.
func (n *Notifier) Publish(event Event) {
	if event == nil {
		return
	}
	n.mu.Lock()
	snapshot := make([]*registration, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, reg := range snapshot {
		if err := n.deliver(reg.listener, event); err != nil {
			n.logError(event, err)
		}
	}
}

func (n *Notifier) deliver(listener Listener, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return listener.Notify(event)
}

func (n *Notifier) logError(event Event, err error) {
	if n.logger == nil {
		return
	}
	n.logger.Error("change event delivery failed",
		slog.String("event", event.EventName()),
		slog.String("error", err.Error()),
	)
}
