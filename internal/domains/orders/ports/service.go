package ports

import (
	"context"

	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
)

// Service exposes fulfillment and order read use cases to adapters.
type Service interface {
	Fulfill(ctx context.Context, request domain.Request) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
