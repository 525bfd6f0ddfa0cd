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

// StockUpdated is raised after a committed stock mutation.
type StockUpdated struct {
	BaseEvent
	ProductID   int64
	Description string
	Stock       int64
}

// EventName returns the event type identifier.
func (e StockUpdated) EventName() string {
	return "catalog.stock.updated"
}

// Message renders the human-readable change description.
func (e StockUpdated) Message() string {
	return fmt.Sprintf("product %q inventory updated to %d", e.Description, e.Stock)
}

// LowStockAlert is raised when post-mutation stock falls below LowStockThreshold.
type LowStockAlert struct {
	BaseEvent
	ProductID   int64
	Description string
	Remaining   int64
}

// EventName returns the event type identifier.
func (e LowStockAlert) EventName() string {
	return "catalog.stock.low"
}

// Message renders the human-readable alert.
func (e LowStockAlert) Message() string {
	return fmt.Sprintf("LOW STOCK ALERT: %q has only %d remaining", e.Description, e.Remaining)
}
