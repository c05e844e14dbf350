package application

import (
	"context"
	"strings"
	"time"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
)

// Service is the cart engine: a stateless orchestrator over the cart
// repository and the catalog inventory store. All multi-step consistency
// lives behind the repository's transactional operations.
type Service struct {
	repo      ports.Repository
	inventory ports.InventoryStore
	now       func() time.Time
}

// NewService wires the cart engine with its collaborators.
func NewService(repo ports.Repository, inventory ports.InventoryStore) *Service {
	return &Service{repo: repo, inventory: inventory, now: time.Now}
}

// AddToCart merges one unit of the product into the customer's unpaid
// cart, creating the cart when absent. Stock is only validated, never
// decremented, at add time; reconciliation happens at checkout.
func (s *Service) AddToCart(ctx context.Context, customerID, model string) (*domain.Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		return nil, mapError(domain.ErrEmptyModel)
	}
	availability, err := s.inventory.GetQuantityAndPrice(ctx, model)
	if err != nil {
		return nil, err
	}
	if availability.Quantity <= 0 {
		return nil, ports.ErrEmptyProductStock
	}
	item, err := domain.NewLineItem(model, availability.Category, availability.Price, 1)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpsertLineItem(ctx, customerID, item)
}

// GetCart returns the customer's unpaid cart, or the canonical empty cart
// when none exists. Absence is never an error.
func (s *Service) GetCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return nil, err
	}
	return s.repo.FindUnpaid(ctx, customerID)
}

// Checkout converts the active cart into a paid order. Preconditions are
// checked in order: an unpaid cart must exist, it must have line items,
// and every line's requested quantity must be available. Validation,
// decrements, and the paid flip commit as one atomic unit inside the
// repository; a partial decrement is never observable.
func (s *Service) Checkout(ctx context.Context, customerID string) (*domain.Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return nil, err
	}
	cart, err := s.repo.FindUnpaid(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart.ID == 0 {
		return nil, ports.ErrCartNotFound
	}
	if cart.IsEmpty() {
		return nil, ports.ErrEmptyCart
	}
	return s.repo.Checkout(ctx, customerID, s.now())
}

// RemoveProductFromCart takes one unit of the product off the cart,
// deleting the line when it would reach zero.
func (s *Service) RemoveProductFromCart(ctx context.Context, customerID, model string) (*domain.Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		return nil, mapError(domain.ErrEmptyModel)
	}
	return s.repo.DecrementOrRemoveLineItem(ctx, customerID, model)
}

// ClearCart removes every line item, leaving the cart active and empty.
// This is distinct from having no cart at all: a later GetCart returns
// the same cart with zero total.
func (s *Service) ClearCart(ctx context.Context, customerID string) (*domain.Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return nil, err
	}
	return s.repo.ClearLineItems(ctx, customerID)
}

// GetCustomerCarts returns the customer's paid cart history.
func (s *Service) GetCustomerCarts(ctx context.Context, customerID string) ([]*domain.Cart, error) {
	if err := requireCustomer(customerID); err != nil {
		return nil, err
	}
	return s.repo.ListPaidForCustomer(ctx, customerID)
}

// GetAllCarts lists every cart in the store. Administrative read path.
func (s *Service) GetAllCarts(ctx context.Context) ([]*domain.Cart, error) {
	return s.repo.ListAll(ctx)
}

// DeleteAllCarts purges every cart. Administrative.
func (s *Service) DeleteAllCarts(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func requireCustomer(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return mapError(domain.ErrEmptyCustomer)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)

// WithClock overrides the payment-date clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}
