package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter for development and tests.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.Model] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByModel(_ context.Context, model string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[model]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

// AdjustQuantity applies the delta under the repository lock, so the
// check and the write are one step.
func (r *Repository) AdjustQuantity(_ context.Context, model string, delta int32) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[model]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if product.Quantity+delta < 0 {
		return nil, ports.ErrLowStock
	}
	product.Quantity += delta
	clone := *product
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) ListByCategory(_ context.Context, category domain.Category) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Product
	for _, product := range r.products {
		if product.Category == category {
			clone := *product
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) Delete(_ context.Context, model string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[model]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, model)
	return nil
}

func (r *Repository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[string]*domain.Product{}
	return nil
}
