package ports

import (
	"context"
	"errors"

	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists completed orders. The collection is append-only:
// existing orders are never mutated or deleted.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
