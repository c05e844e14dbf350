package ports

import (
	"context"
	"errors"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrAlreadyExists = errors.New("product model already registered")
	ErrLowStock      = errors.New("requested quantity exceeds available stock")
)

// Repository persists the product catalog and its stock counters.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByModel(ctx context.Context, model string) (*domain.Product, error)
	// AdjustQuantity applies a signed stock delta atomically, failing
	// with ErrLowStock when the result would be negative.
	AdjustQuantity(ctx context.Context, model string, delta int32) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	Delete(ctx context.Context, model string) error
	DeleteAll(ctx context.Context) error
}
