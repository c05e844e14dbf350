package ports

import (
	"context"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
)

// WorkflowOrchestrator runs the checkout transaction, either durably on a
// Temporal cluster or inline against the service.
type WorkflowOrchestrator interface {
	Checkout(ctx context.Context, customerID string) (*domain.Cart, error)
}
