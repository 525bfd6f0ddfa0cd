package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Status enumerates order progression. Orders are created in their terminal
// state by a successful fulfillment run; pending exists only for records that
// were persisted before stock application was introduced.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

var (
	ErrEmptyRequest      = errors.New("order request has no line items")
	ErrInvalidQuantity   = errors.New("line quantity must be greater than zero")
	ErrInvalidProductID  = errors.New("line product id must be greater than zero")
	ErrDuplicateProduct  = errors.New("duplicate product id in order request")
	ErrNoLines           = errors.New("order must carry at least one line item")
	ErrInvalidStatus     = errors.New("order status is invalid")
)

// RequestLine is one (product, quantity) pair within an order request.
type RequestLine struct {
	ProductID int64
	Quantity  int64
}

// Request is the transient, caller-constructed order: a set of product-id to
// quantity pairs. It is never persisted; only a successful fulfillment run
// produces an Order.
type Request struct {
	Lines []RequestLine
}

// AddLine appends a line item to the request.
func (r *Request) AddLine(productID, quantity int64) {
	r.Lines = append(r.Lines, RequestLine{ProductID: productID, Quantity: quantity})
}

// Normalize validates the request and returns its lines sorted by ascending
// product id, making the apply and compensation order deterministic.
// Duplicate product ids are rejected rather than merged.
func (r Request) Normalize() ([]RequestLine, error) {
	if len(r.Lines) == 0 {
		return nil, ErrEmptyRequest
	}
	seen := make(map[int64]struct{}, len(r.Lines))
	lines := make([]RequestLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		if line.ProductID <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidProductID, line.ProductID)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, line.ProductID)
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %d", ErrDuplicateProduct, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines, nil
}

// Line is a fulfilled line item with the unit price captured at order time.
// The price stays fixed even if the catalog price later changes.
type Line struct {
	ProductID int64
	Quantity  int64
	UnitPrice float64
}

// Order is the persisted outcome of a successful fulfillment run. Immutable
// after creation.
type Order struct {
	ID        int64
	Reference string
	Lines     []Line
	Status    Status
	PlacedAt  time.Time
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Lines {
		if line.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Total sums quantity times captured unit price across all lines.
func (o *Order) Total() float64 {
	var total float64
	for _, line := range o.Lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}
