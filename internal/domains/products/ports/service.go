package ports

import (
	"context"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
)

// Service exposes the catalog use cases to transport layers.
type Service interface {
	RegisterArrival(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ChangeQuantity(ctx context.Context, model string, delta int32) (*domain.Product, error)
	Sell(ctx context.Context, model string, quantity int32) (*domain.Product, error)
	GetByModel(ctx context.Context, model string) (*domain.Product, error)
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Delete(ctx context.Context, model string) error
	DeleteAll(ctx context.Context) error
}
