package domain

import (
	"errors"
	"strings"
)

// LowStockThreshold is the stock level below which a low-stock alert is raised.
const LowStockThreshold = 5

var (
	ErrEmptyDescription = errors.New("product description is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeStock    = errors.New("product stock must not be negative")
)

// Product is the aggregate owned by the catalog bounded context. Stock is
// mutated only through the repository's conditional adjustment primitive.
type Product struct {
	ID          int64
	Description string
	Price       float64
	Stock       int64
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(id int64, description string, price float64, stock int64) (*Product, error) {
	p := &Product{ID: id}
	if err := p.Describe(description); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	p.Stock = stock
	return p, nil
}

// Describe trims and validates the product description.
func (p *Product) Describe(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	p.Description = description
	return nil
}

// SetPrice validates and stores the unit price.
func (p *Product) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// BelowThreshold reports whether the current stock is in low-stock territory.
func (p *Product) BelowThreshold() bool {
	return p.Stock < LowStockThreshold
}
