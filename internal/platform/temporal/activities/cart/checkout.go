package cart

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
)

const (
	// CheckoutActivityName runs the transactional checkout for a customer.
	CheckoutActivityName = "cart.activities.Checkout"

	// Application-error types used to carry business rejections across
	// the workflow boundary without triggering retries.
	ErrTypeCartNotFound  = "CartNotFound"
	ErrTypeEmptyCart     = "EmptyCart"
	ErrTypeStockConflict = "StockConflict"
)

// Activities groups activities operating on the cart bounded context.
type Activities struct {
	service cartports.Service
}

// NewActivities wires the cart engine into the Temporal activities bundle.
func NewActivities(service cartports.Service) *Activities {
	return &Activities{service: service}
}

// Checkout finalizes the customer's cart. The whole validation and
// decrement unit commits or rolls back inside the service call, so the
// activity is safe to retry on transport failures.
func (a *Activities) Checkout(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("checkout activity not initialized", "customer", customerID)
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("Checkout activity started", "customer", customerID)
	cart, err := a.service.Checkout(ctx, customerID)
	if err != nil {
		logger.Error("Checkout activity failed", "customer", customerID, "error", err)
		return nil, asActivityError(err)
	}
	logger.Info("Checkout activity completed", "customer", customerID, "cartId", cart.ID)
	return cart, nil
}

// asActivityError converts business rejections into non-retryable
// application errors; anything else propagates for the retry policy.
func asActivityError(err error) error {
	switch {
	case errors.Is(err, cartports.ErrCartNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeCartNotFound, err)
	case errors.Is(err, cartports.ErrEmptyCart):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeEmptyCart, err)
	case errors.Is(err, cartports.ErrStockConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeStockConflict, err)
	default:
		return err
	}
}

// SentinelFromErrorType maps an application-error type emitted by
// asActivityError back to the engine's sentinel, or nil when unknown.
func SentinelFromErrorType(errType string) error {
	switch errType {
	case ErrTypeCartNotFound:
		return cartports.ErrCartNotFound
	case ErrTypeEmptyCart:
		return cartports.ErrEmptyCart
	case ErrTypeStockConflict:
		return cartports.ErrStockConflict
	default:
		return nil
	}
}
