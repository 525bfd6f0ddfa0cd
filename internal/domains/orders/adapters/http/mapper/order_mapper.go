package mapper

import (
	"time"

	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
)

// RequestLine is one inbound (product, quantity) pair.
type RequestLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// FulfillmentRequest captures the inbound order payload.
type FulfillmentRequest struct {
	Lines []RequestLine `json:"lines"`
}

// Line is the HTTP representation of a fulfilled line item.
type Line struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is the HTTP representation of a fulfilled order.
type Order struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Lines     []Line    `json:"lines"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	PlacedAt  time.Time `json:"placedAt"`
}

// ToDomainRequest maps the inbound payload into a domain order request.
func ToDomainRequest(payload FulfillmentRequest) domain.Request {
	var request domain.Request
	for _, line := range payload.Lines {
		request.AddLine(line.ProductID, line.Quantity)
	}
	return request
}

// FromDomainOrder maps a domain order into its transport representation.
func FromDomainOrder(o *domain.Order) Order {
	lines := make([]Line, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, Line{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return Order{
		ID:        o.ID,
		Reference: o.Reference,
		Lines:     lines,
		Status:    string(o.Status),
		Total:     o.Total(),
		PlacedAt:  o.PlacedAt,
	}
}

// FromDomainOrderList maps a slice of domain orders to transport orders.
func FromDomainOrderList(list []*domain.Order) []Order {
	result := make([]Order, 0, len(list))
	for _, o := range list {
		result = append(result, FromDomainOrder(o))
	}
	return result
}
