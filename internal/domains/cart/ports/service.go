package ports

import (
	"context"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
)

// Service is the cart engine surface exposed to transport layers.
type Service interface {
	AddToCart(ctx context.Context, customerID, model string) (*domain.Cart, error)
	GetCart(ctx context.Context, customerID string) (*domain.Cart, error)
	Checkout(ctx context.Context, customerID string) (*domain.Cart, error)
	RemoveProductFromCart(ctx context.Context, customerID, model string) (*domain.Cart, error)
	ClearCart(ctx context.Context, customerID string) (*domain.Cart, error)
	GetCustomerCarts(ctx context.Context, customerID string) ([]*domain.Cart, error)
	GetAllCarts(ctx context.Context) ([]*domain.Cart, error)
	DeleteAllCarts(ctx context.Context) error
}
