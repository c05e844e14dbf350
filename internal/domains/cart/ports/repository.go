package ports

import (
	"context"
	"errors"
	"time"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
)

var (
	// ErrCartNotFound signals an operation that needs an existing unpaid
	// cart found none, or a paid-cart lookup by id missed.
	ErrCartNotFound = errors.New("cart not found")
	// ErrEmptyCart signals checkout on a cart with zero line items.
	ErrEmptyCart = errors.New("cart has no line items")
	// ErrProductNotInCart signals a remove for a product the cart does not hold.
	ErrProductNotInCart = errors.New("product not in cart")
	// ErrStockConflict signals a checkout-time availability conflict: some
	// line requests more units than the catalog currently has.
	ErrStockConflict = errors.New("insufficient stock for a product in the cart")
)

// Repository persists carts and their line items. Every structural change
// to line items recomputes the parent cart total inside the same
// transaction, so a stale total is never observable.
type Repository interface {
	// FindUnpaid returns the customer's active cart, or the canonical
	// empty cart when none exists. Absence is not an error.
	FindUnpaid(ctx context.Context, customerID string) (*domain.Cart, error)
	// FindPaidByID loads a paid cart with its items for history
	// reconstruction. Returns ErrCartNotFound when missing or unpaid.
	FindPaidByID(ctx context.Context, id int64) (*domain.Cart, error)
	// UpsertLineItem merges the snapshot line into the customer's unpaid
	// cart, creating the cart when absent. The quantity increment is
	// atomic with respect to concurrent upserts of the same line.
	UpsertLineItem(ctx context.Context, customerID string, item domain.LineItem) (*domain.Cart, error)
	// DecrementOrRemoveLineItem takes one unit off the line, deleting it
	// at quantity one. Returns ErrProductNotInCart when the line is absent
	// and ErrCartNotFound when the customer has no unpaid cart with items.
	DecrementOrRemoveLineItem(ctx context.Context, customerID, model string) (*domain.Cart, error)
	// ClearLineItems removes every line of the unpaid cart, keeping the
	// cart row active. Returns ErrCartNotFound when no unpaid cart exists.
	ClearLineItems(ctx context.Context, customerID string) (*domain.Cart, error)
	// Checkout atomically validates per-line stock, decrements catalog
	// quantities, and marks the cart paid. Either every line passes and
	// every decrement applies, or nothing does. Returns ErrCartNotFound,
	// ErrEmptyCart, or ErrStockConflict per the engine's error taxonomy.
	Checkout(ctx context.Context, customerID string, paymentDate time.Time) (*domain.Cart, error)
	// ListPaidForCustomer returns the customer's checkout history,
	// ordering irrelevant.
	ListPaidForCustomer(ctx context.Context, customerID string) ([]*domain.Cart, error)
	// ListAll returns every cart, paid and unpaid. Administrative.
	ListAll(ctx context.Context) ([]*domain.Cart, error)
	// DeleteAll purges every cart and line item. Administrative.
	DeleteAll(ctx context.Context) error
}
