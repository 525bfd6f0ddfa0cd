package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/orderstack/inventory-service/internal/domains/catalog/domain"
	catalogports "github.com/orderstack/inventory-service/internal/domains/catalog/ports"
)

const tracerName = "github.com/orderstack/inventory-service/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) AddProduct(ctx context.Context, description string, price float64, initialStock int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddProduct",
		trace.WithAttributes(attribute.String("product.description", description)))
	defer span.End()

	result, err := s.inner.AddProduct(ctx, description, price, initialStock)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product", slog.String("product.description", description))
	}
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "product added", slog.Int64("product.id", result.ID), slog.Int64("product.stock", result.Stock))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalog.product.count", len(result)))
	return result, nil
}

func (s *Service) Restock(ctx context.Context, id int64, quantity int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Restock",
		trace.WithAttributes(attribute.Int64("product.id", id), attribute.Int64("restock.quantity", quantity)))
	defer span.End()

	result, err := s.inner.Restock(ctx, id, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restock product", slog.Int64("product.id", id))
	}
	s.metrics.recordRestocked(ctx, quantity)
	s.logInfo(ctx, "product restocked", slog.Int64("product.id", result.ID), slog.Int64("product.stock", result.Stock))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	productsAdded  metric.Int64Counter
	unitsRestocked metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsAdded, _ := m.Int64Counter("catalog.service.products_added", metric.WithDescription("Number of products added to the catalog"))
	unitsRestocked, _ := m.Int64Counter("catalog.service.units_restocked", metric.WithDescription("Number of stock units credited by restocks"))
	return serviceMetrics{productsAdded: productsAdded, unitsRestocked: unitsRestocked}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.productsAdded != nil {
		m.productsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRestocked(ctx context.Context, quantity int64) {
	if m.unitsRestocked != nil {
		m.unitsRestocked.Add(ctx, quantity)
	}
}

var _ catalogports.Service = (*Service)(nil)
