package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	catalogports "github.com/orderstack/inventory-service/internal/domains/catalog/ports"
	"github.com/orderstack/inventory-service/internal/domains/orders/domain"
	"github.com/orderstack/inventory-service/internal/domains/orders/ports"
)

// Service is the fulfillment engine. A fulfillment run either debits every
// requested line and persists an Order, or leaves the catalog exactly as it
// found it. The engine holds no lock of its own: atomicity of each stock
// mutation rests entirely on the catalog repository's conditional
// AdjustStock, so the up-front validation pass is a fail-fast optimization,
// never the correctness guarantee.
type Service struct {
	orders    ports.Repository
	catalog   catalogports.Repository
	publisher ports.Publisher
	logger    *slog.Logger
	threshold int64
}

// Option configures the fulfillment engine.
type Option func(*Service)

// WithPublisher wires the change-event fan-out.
func WithPublisher(publisher ports.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithLogger sets the logger used for compensation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLowStockThreshold overrides the default low-stock alert threshold.
func WithLowStockThreshold(threshold int64) Option {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// NewService wires the engine with its stores.
func NewService(orders ports.Repository, catalog catalogports.Repository, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		catalog:   catalog,
		threshold: catalogdomain.LowStockThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// appliedLine tracks one successfully debited line during the apply pass.
type appliedLine struct {
	productID   int64
	quantity    int64
	unitPrice   float64
	description string
	remaining   int64
}

// Fulfill validates the request, debits stock for every line, persists the
// resulting order, and publishes change events. On any failure after the
// first debit it credits back what was already taken, in reverse order of
// application, before reporting the rejection.
func (s *Service) Fulfill(ctx context.Context, request domain.Request) (*domain.Order, error) {
	lines, err := request.Normalize()
	if err != nil {
		return nil, mapRequestError(err)
	}

	prices, err := s.validate(ctx, lines)
	if err != nil {
		return nil, err
	}

	applied, err := s.apply(ctx, lines, prices)
	if err != nil {
		return nil, err
	}

	order, err := s.commit(ctx, applied)
	if err != nil {
		return nil, err
	}

	s.publishOutcome(order, applied)
	return order, nil
}

// GetOrder loads a single persisted order.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns all persisted orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// validate fails fast on missing products or visibly short stock, before any
// mutation. It also captures the unit prices the order will carry.
func (s *Service) validate(ctx context.Context, lines []domain.RequestLine) (map[int64]*catalogdomain.Product, error) {
	prices := make(map[int64]*catalogdomain.Product, len(lines))
	for _, line := range lines {
		product, err := s.catalog.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, line.ProductID)
			}
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: product %d has %d, requested %d",
				ErrInsufficientStock, line.ProductID, product.Stock, line.Quantity)
		}
		prices[line.ProductID] = product
	}
	return prices, nil
}

// apply debits each line in ascending product-id order. The conditional
// adjustment can still refuse a line that validated moments ago when a
// concurrent run drained the stock; in that case everything already debited
// is credited back.
func (s *Service) apply(ctx context.Context, lines []domain.RequestLine, prices map[int64]*catalogdomain.Product) ([]appliedLine, error) {
	applied := make([]appliedLine, 0, len(lines))
	for _, line := range lines {
		remaining, err := s.catalog.AdjustStock(ctx, line.ProductID, -line.Quantity)
		if err != nil {
			if compErr := s.compensate(ctx, applied); compErr != nil {
				return nil, compErr
			}
			switch {
			case errors.Is(err, catalogports.ErrInsufficientStock):
				return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, line.ProductID)
			case errors.Is(err, catalogports.ErrNotFound):
				return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, line.ProductID)
			default:
				return nil, err
			}
		}
		product := prices[line.ProductID]
		applied = append(applied, appliedLine{
			productID:   line.ProductID,
			quantity:    line.Quantity,
			unitPrice:   product.Price,
			description: product.Description,
			remaining:   remaining,
		})
	}
	return applied, nil
}

// commit persists the order record. If the write fails the debits are
// credited back so stock never stays decremented for an order that does not
// exist.
func (s *Service) commit(ctx context.Context, applied []appliedLine) (*domain.Order, error) {
	order := &domain.Order{
		Reference: uuid.NewString(),
		Status:    domain.StatusCompleted,
		PlacedAt:  time.Now().UTC(),
		Lines:     make([]domain.Line, 0, len(applied)),
	}
	for _, line := range applied {
		order.Lines = append(order.Lines, domain.Line{
			ProductID: line.productID,
			Quantity:  line.quantity,
			UnitPrice: line.unitPrice,
		})
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		if compErr := s.compensate(ctx, applied); compErr != nil {
			return nil, compErr
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return created, nil
}

// compensate credits back already-debited lines in reverse order of
// application. A storage failure here leaves the catalog genuinely
// inconsistent, so it is logged per product and surfaced as a distinct,
// operator-visible failure kind.
func (s *Service) compensate(ctx context.Context, applied []appliedLine) error {
	var failed error
	for i := len(applied) - 1; i >= 0; i-- {
		line := applied[i]
		if _, err := s.catalog.AdjustStock(ctx, line.productID, line.quantity); err != nil {
			failed = errors.Join(failed, fmt.Errorf("product %d: %w", line.productID, err))
			if s.logger != nil {
				s.logger.Error("failed to credit back debited stock; catalog may be inconsistent",
					slog.Int64("product.id", line.productID),
					slog.Int64("quantity", line.quantity),
					slog.String("error", err.Error()),
				)
			}
		}
	}
	if failed != nil {
		return fmt.Errorf("%w: %w", ErrCompensationFailure, failed)
	}
	return nil
}

// publishOutcome emits one stock-updated event per debited line, low-stock
// alerts where the post-debit level fell under the threshold, and a single
// order-created event. The fulfillment result is already decided at this
// point; nothing here can change it.
func (s *Service) publishOutcome(order *domain.Order, applied []appliedLine) {
	if s.publisher == nil {
		return
	}
	now := time.Now().UTC()
	for _, line := range applied {
		s.publisher.Publish(catalogdomain.StockUpdated{
			BaseEvent:   catalogdomain.BaseEvent{Timestamp: now},
			ProductID:   line.productID,
			Description: line.description,
			Stock:       line.remaining,
		})
		if line.remaining < s.threshold {
			s.publisher.Publish(catalogdomain.LowStockAlert{
				BaseEvent:   catalogdomain.BaseEvent{Timestamp: now},
				ProductID:   line.productID,
				Description: line.description,
				Remaining:   line.remaining,
			})
		}
	}
	s.publisher.Publish(domain.OrderCreated{
		BaseEvent: domain.BaseEvent{Timestamp: now},
		OrderID:   order.ID,
		Reference: order.Reference,
		LineCount: len(order.Lines),
		Total:     order.Total(),
	})
}

var _ ports.Service = (*Service)(nil)
