package application

import (
	"context"
	"time"

	"github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	"github.com/orderstack/inventory-service/internal/domains/catalog/ports"
)

// Service orchestrates catalog maintenance use cases. Stock debits for order
// fulfillment do not go through this service; they use the repository's
// AdjustStock primitive directly from the fulfillment engine.
type Service struct {
	repo      ports.Repository
	publisher ports.Publisher
}

// NewService wires the catalog service with its dependencies. The publisher
// may be nil, in which case change events are dropped.
func NewService(repo ports.Repository, publisher ports.Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// AddProduct creates a new catalog entry.
func (s *Service) AddProduct(ctx context.Context, description string, price float64, initialStock int64) (*domain.Product, error) {
	product, err := domain.NewProduct(0, description, price, initialStock)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns the full catalog. Iteration order carries no meaning.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// Restock credits stock for direct catalog maintenance and publishes the
// resulting change events.
func (s *Service) Restock(ctx context.Context, id int64, quantity int64) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	newStock, err := s.repo.AdjustStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	product.Stock = newStock
	s.publishStockChange(product)
	return product, nil
}

func (s *Service) publishStockChange(product *domain.Product) {
	if s.publisher == nil {
		return
	}
	now := time.Now().UTC()
	s.publisher.Publish(domain.StockUpdated{
		BaseEvent:   domain.BaseEvent{Timestamp: now},
		ProductID:   product.ID,
		Description: product.Description,
		Stock:       product.Stock,
	})
	if product.BelowThreshold() {
		s.publisher.Publish(domain.LowStockAlert{
			BaseEvent:   domain.BaseEvent{Timestamp: now},
			ProductID:   product.ID,
			Description: product.Description,
			Remaining:   product.Stock,
		})
	}
}

var _ ports.Service = (*Service)(nil)
