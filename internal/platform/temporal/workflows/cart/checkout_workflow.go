package cart

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	cartactivities "github.com/LienoPC/EZ-Electronics-sub000/internal/platform/temporal/activities/cart"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "cart.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "CART_CHECKOUT"
)

// CheckoutWorkflowInput carries the payload needed to finalize a cart.
type CheckoutWorkflowInput struct {
	CustomerID string
	TraceID    string
}

// CheckoutWorkflow runs the checkout transaction as a single activity so
// the all-or-nothing unit stays inside one database transaction.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*cartdomain.Cart, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "customer", input.CustomerID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		// Business rejections come back as non-retryable application
		// errors from the activity; only transport failures retry.
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var cart cartdomain.Cart
	err := workflow.ExecuteActivity(ctx, cartactivities.CheckoutActivityName, input.CustomerID).Get(ctx, &cart)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "customer", input.CustomerID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "customer", input.CustomerID, "cartId", cart.ID)...)
	return &cart, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
