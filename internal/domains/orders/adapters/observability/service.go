package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/orderstack/inventory-service/internal/domains/orders/application"
	ordersdomain "github.com/orderstack/inventory-service/internal/domains/orders/domain"
	ordersports "github.com/orderstack/inventory-service/internal/domains/orders/ports"
)

const tracerName = "github.com/orderstack/inventory-service/internal/domains/orders/adapters/observability/service"

// Service decorates the fulfillment engine with tracing, logging, and
// metrics, including a per-reason rejection counter.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core fulfillment service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) Fulfill(ctx context.Context, request ordersdomain.Request) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.Fulfill",
		trace.WithAttributes(attribute.Int("request.line_count", len(request.Lines))))
	defer span.End()

	s.logInfo(ctx, "fulfilling order request", slog.Int("request.line_count", len(request.Lines)))
	result, err := s.inner.Fulfill(ctx, request)
	if err != nil {
		reason := rejectionReason(err)
		span.SetAttributes(attribute.String("fulfillment.rejection", reason))
		s.metrics.recordRejected(ctx, reason)
		return nil, s.handleError(ctx, span, err, "order request rejected", slog.String("rejection", reason))
	}
	s.metrics.recordFulfilled(ctx)
	s.logInfo(ctx, "order fulfilled",
		slog.Int64("order.id", result.ID),
		slog.String("order.reference", result.Reference),
		slog.Float64("order.total", result.Total()),
	)
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

// rejectionReason buckets engine errors for metrics and span attributes.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, application.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, application.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, application.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, application.ErrCompensationFailure):
		return "compensation_failure"
	case errors.Is(err, application.ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "storage_failure"
	}
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
	ordersFulfilled metric.Int64Counter
	ordersRejected  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	fulfilled, _ := m.Int64Counter("orders.service.fulfilled", metric.WithDescription("Number of successfully fulfilled orders"))
	rejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of rejected order requests"))
	return serviceMetrics{ordersFulfilled: fulfilled, ordersRejected: rejected}
}

func (m serviceMetrics) recordFulfilled(ctx context.Context) {
	if m.ordersFulfilled != nil {
		m.ordersFulfilled.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("rejection.reason", reason)))
	}
}

var _ ordersports.Service = (*Service)(nil)
