package mapper

import (
	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
)

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	LowStock    bool    `json:"lowStock"`
}

// CreateProductRequest captures the inbound payload for adding a product.
type CreateProductRequest struct {
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	InitialStock int64   `json:"initialStock"`
}

// RestockRequest captures the inbound payload for crediting stock.
type RestockRequest struct {
	Quantity int64 `json:"quantity"`
}

// FromDomainProduct maps a domain product into its transport representation.
func FromDomainProduct(p *domain.Product) Product {
	return Product{
		ID:          p.ID,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		LowStock:    p.BelowThreshold(),
	}
}

// FromDomainProductList maps a slice of domain products to transport products.
func FromDomainProductList(list []*domain.Product) []Product {
	result := make([]Product, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainProduct(p))
	}
	return result
}
