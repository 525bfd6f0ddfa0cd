package ports

import (
	"context"
	"errors"

	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned by AdjustStock when the requested
	// decrement would drive the stock count negative. The row is untouched.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists the product catalog. AdjustStock is the sole stock
// mutation primitive: it must apply the delta atomically with respect to
// concurrent callers and refuse any result below zero.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int64) (int64, error)
}
