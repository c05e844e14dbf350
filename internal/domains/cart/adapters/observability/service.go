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

	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
)

const tracerName = "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/observability/service"

// Service decorates the cart engine with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
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

func (s *Service) AddToCart(ctx context.Context, customerID, model string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddToCart",
		trace.WithAttributes(attribute.String("cart.customer", customerID), attribute.String("product.model", model)))
	defer span.End()

	result, err := s.inner.AddToCart(ctx, customerID, model)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product to cart",
			slog.String("customer", customerID), slog.String("model", model))
	}
	s.metrics.recordAdd(ctx)
	s.logInfo(ctx, "product added to cart",
		slog.String("customer", customerID), slog.String("model", model), slog.Float64("total", result.Total))
	return result, nil
}

func (s *Service) GetCart(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart",
		trace.WithAttributes(attribute.String("cart.customer", customerID)))
	defer span.End()

	result, err := s.inner.GetCart(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("customer", customerID))
	}
	span.SetAttributes(attribute.Int("cart.items", len(result.Items)))
	return result, nil
}

func (s *Service) Checkout(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Checkout",
		trace.WithAttributes(attribute.String("cart.customer", customerID)))
	defer span.End()

	s.logInfo(ctx, "checkout started", slog.String("customer", customerID))
	result, err := s.inner.Checkout(ctx, customerID)
	if err != nil {
		if errors.Is(err, cartports.ErrStockConflict) {
			s.metrics.recordStockConflict(ctx)
		}
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("customer", customerID))
	}
	s.metrics.recordCheckout(ctx, result.Total)
	s.logInfo(ctx, "checkout completed",
		slog.String("customer", customerID), slog.Int64("cart.id", result.ID), slog.Float64("total", result.Total))
	return result, nil
}

func (s *Service) RemoveProductFromCart(ctx context.Context, customerID, model string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveProductFromCart",
		trace.WithAttributes(attribute.String("cart.customer", customerID), attribute.String("product.model", model)))
	defer span.End()

	result, err := s.inner.RemoveProductFromCart(ctx, customerID, model)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove product from cart",
			slog.String("customer", customerID), slog.String("model", model))
	}
	s.logInfo(ctx, "product removed from cart",
		slog.String("customer", customerID), slog.String("model", model), slog.Float64("total", result.Total))
	return result, nil
}

func (s *Service) ClearCart(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ClearCart",
		trace.WithAttributes(attribute.String("cart.customer", customerID)))
	defer span.End()

	result, err := s.inner.ClearCart(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("customer", customerID))
	}
	s.logInfo(ctx, "cart cleared", slog.String("customer", customerID))
	return result, nil
}

func (s *Service) GetCustomerCarts(ctx context.Context, customerID string) ([]*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCustomerCarts",
		trace.WithAttributes(attribute.String("cart.customer", customerID)))
	defer span.End()

	result, err := s.inner.GetCustomerCarts(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart history", slog.String("customer", customerID))
	}
	span.SetAttributes(attribute.Int("cart.history.count", len(result)))
	return result, nil
}

func (s *Service) GetAllCarts(ctx context.Context) ([]*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetAllCarts")
	defer span.End()

	result, err := s.inner.GetAllCarts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list carts")
	}
	span.SetAttributes(attribute.Int("cart.count", len(result)))
	return result, nil
}

func (s *Service) DeleteAllCarts(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartService.DeleteAllCarts")
	defer span.End()

	if err := s.inner.DeleteAllCarts(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to purge carts")
	}
	s.logInfo(ctx, "all carts purged")
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsAdded     metric.Int64Counter
	checkouts      metric.Int64Counter
	checkoutTotal  metric.Float64Counter
	stockConflicts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Number of line-item additions"))
	checkouts, _ := m.Int64Counter("cart.service.checkouts", metric.WithDescription("Number of successful checkouts"))
	checkoutTotal, _ := m.Float64Counter("cart.service.checkout_total", metric.WithDescription("Sum of paid cart totals"))
	stockConflicts, _ := m.Int64Counter("cart.service.stock_conflicts", metric.WithDescription("Checkouts rejected for insufficient stock"))
	return serviceMetrics{itemsAdded: itemsAdded, checkouts: checkouts, checkoutTotal: checkoutTotal, stockConflicts: stockConflicts}
}

func (m serviceMetrics) recordAdd(ctx context.Context) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCheckout(ctx context.Context, total float64) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1)
	}
	if m.checkoutTotal != nil {
		m.checkoutTotal.Add(ctx, total)
	}
}

func (m serviceMetrics) recordStockConflict(ctx context.Context) {
	if m.stockConflicts != nil {
		m.stockConflicts.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
