package ports

import (
	"context"

	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
)

// Service exposes catalog maintenance and read use cases to adapters.
type Service interface {
	AddProduct(ctx context.Context, description string, price float64, initialStock int64) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	Restock(ctx context.Context, id int64, quantity int64) (*domain.Product, error)
}
