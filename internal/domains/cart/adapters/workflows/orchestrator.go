package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	cartactivities "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/temporal/activities/cart"
	cartworkflows "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/temporal/workflows/cart"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCheckout)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout starts checkout workflows on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckout wires a Temporal client into the orchestrator.
func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: cartworkflows.CheckoutTaskQueue}
}

// Checkout runs the durable checkout workflow and waits for its result.
func (o *TemporalCheckout) Checkout(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout orchestrator not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("cart-checkout-%s-%s", customerID, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		cartworkflows.CheckoutWorkflow,
		cartworkflows.CheckoutWorkflowInput{CustomerID: customerID, TraceID: traceComponent},
	)
	if err != nil {
		// A duplicate submission for the same trace joins the run that
		// is already finalizing this cart instead of failing.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var cart cartdomain.Cart
			if err := existingRun.Get(ctx, &cart); err != nil {
				return nil, unwrapBusinessError(err)
			}
			return &cart, nil
		}
		return nil, err
	}
	var cart cartdomain.Cart
	if err := run.Get(ctx, &cart); err != nil {
		return nil, unwrapBusinessError(err)
	}
	return &cart, nil
}

// unwrapBusinessError restores engine sentinels carried across the
// workflow boundary as application errors, so transport-layer mapping
// keeps working for durable checkouts.
func unwrapBusinessError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		if sentinel := cartactivities.SentinelFromErrorType(appErr.Type()); sentinel != nil {
			return sentinel
		}
	}
	return err
}

// InlineCheckout executes the service directly without Temporal, useful
// for tests or dev fallbacks.
type InlineCheckout struct {
	service ports.Service
}

// NewInlineCheckout wraps the cart engine for synchronous execution.
func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

// Checkout delegates to the engine without durable orchestration.
func (o *InlineCheckout) Checkout(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout orchestrator not configured")
	}
	return o.service.Checkout(ctx, customerID)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
