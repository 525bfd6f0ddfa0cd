package domain

import (
	"fmt"
	"time"
)

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderCreated is raised once per successfully committed fulfillment run.
type OrderCreated struct {
	BaseEvent
	OrderID   int64
	Reference string
	LineCount int
	Total     float64
}

// EventName returns the event type identifier.
func (e OrderCreated) EventName() string {
	return "orders.order.created"
}

// Message renders the human-readable change description.
func (e OrderCreated) Message() string {
	return fmt.Sprintf("order #%d (%s) created with %d line(s), total %.2f", e.OrderID, e.Reference, e.LineCount, e.Total)
}
