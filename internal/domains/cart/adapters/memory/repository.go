package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	productports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart persistence adapter for development
// and tests. A single mutex serializes every mutation, which also covers
// the at-most-one-unpaid-cart and merge invariants without row locks.
type Repository struct {
	mu      sync.RWMutex
	active  map[string]*domain.Cart
	paid    map[int64]*domain.Cart
	nextID  int64
	catalog productports.Repository
}

// NewRepository wires the in-memory store. The catalog is consulted and
// decremented during checkout; it may be nil when checkout is not used.
func NewRepository(catalog productports.Repository) *Repository {
	return &Repository{
		active:  map[string]*domain.Cart{},
		paid:    map[int64]*domain.Cart{},
		catalog: catalog,
	}
}

func (r *Repository) FindUnpaid(_ context.Context, customerID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.active[customerID]
	if !ok {
		return domain.EmptyCart(customerID), nil
	}
	return cart.Clone(), nil
}

func (r *Repository) FindPaidByID(_ context.Context, id int64) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.paid[id]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	return cart.Clone(), nil
}

func (r *Repository) UpsertLineItem(_ context.Context, customerID string, item domain.LineItem) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.active[customerID]
	if !ok {
		r.nextID++
		cart = domain.EmptyCart(customerID)
		cart.ID = r.nextID
		r.active[customerID] = cart
	}
	cart.MergeLine(item)
	return cart.Clone(), nil
}

func (r *Repository) DecrementOrRemoveLineItem(_ context.Context, customerID, model string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.active[customerID]
	if !ok || cart.IsEmpty() {
		return nil, ports.ErrCartNotFound
	}
	if !cart.RemoveOneUnit(model) {
		return nil, ports.ErrProductNotInCart
	}
	return cart.Clone(), nil
}

func (r *Repository) ClearLineItems(_ context.Context, customerID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.active[customerID]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	cart.ClearLines()
	return cart.Clone(), nil
}

// Checkout validates stock for every line, decrements the catalog, and
// marks the cart paid while holding the repository mutex, so concurrent
// checkouts of the same products serialize here. A decrement that fails
// after earlier lines succeeded is compensated before returning.
func (r *Repository) Checkout(ctx context.Context, customerID string, paymentDate time.Time) (*domain.Cart, error) {
	if r.catalog == nil {
		return nil, errors.New("memory cart repository has no catalog configured")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.active[customerID]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	if cart.IsEmpty() {
		return nil, ports.ErrEmptyCart
	}
	for _, item := range cart.Items {
		product, err := r.catalog.GetByModel(ctx, item.ProductModel)
		if err != nil {
			if errors.Is(err, productports.ErrNotFound) {
				return nil, ports.ErrStockConflict
			}
			return nil, err
		}
		if product.Quantity <= 0 || product.Quantity < item.Quantity {
			return nil, ports.ErrStockConflict
		}
	}
	applied := make([]domain.LineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if _, err := r.catalog.AdjustQuantity(ctx, item.ProductModel, -item.Quantity); err != nil {
			for _, done := range applied {
				_, _ = r.catalog.AdjustQuantity(ctx, done.ProductModel, done.Quantity)
			}
			if errors.Is(err, productports.ErrLowStock) || errors.Is(err, productports.ErrNotFound) {
				return nil, ports.ErrStockConflict
			}
			return nil, err
		}
		applied = append(applied, item)
	}
	cart.MarkPaid(paymentDate)
	r.paid[cart.ID] = cart
	delete(r.active, customerID)
	return cart.Clone(), nil
}

func (r *Repository) ListPaidForCustomer(_ context.Context, customerID string) ([]*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var carts []*domain.Cart
	for _, cart := range r.paid {
		if cart.CustomerID == customerID {
			carts = append(carts, cart.Clone())
		}
	}
	return carts, nil
}

func (r *Repository) ListAll(_ context.Context) ([]*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	carts := make([]*domain.Cart, 0, len(r.active)+len(r.paid))
	for _, cart := range r.active {
		carts = append(carts, cart.Clone())
	}
	for _, cart := range r.paid {
		carts = append(carts, cart.Clone())
	}
	return carts, nil
}

func (r *Repository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = map[string]*domain.Cart{}
	r.paid = map[int64]*domain.Cart{}
	return nil
}
