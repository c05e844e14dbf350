package ports

import (
	"context"
	"errors"
)

var (
	// ErrProductNotFound signals the model does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrEmptyProductStock signals the product exists with zero available units.
	ErrEmptyProductStock = errors.New("product stock is empty")
	// ErrInsufficientStock signals a conditional decrement asked for more
	// units than available.
	ErrInsufficientStock = errors.New("insufficient product stock")
)

// Availability is the inventory snapshot the engine reads at add time.
type Availability struct {
	Model    string
	Category string
	Quantity int32
	Price    float64
}

// InventoryStore is the catalog collaborator. The cart engine only reads
// availability and requests conditional decrements; it never owns product
// rows.
type InventoryStore interface {
	// GetQuantityAndPrice returns the current availability for a model,
	// or ErrProductNotFound.
	GetQuantityAndPrice(ctx context.Context, model string) (Availability, error)
	// DecrementQuantity atomically subtracts amount units when at least
	// that many are available, failing with ErrInsufficientStock
	// otherwise. Compare-and-swap, never a two-step read-modify-write.
	DecrementQuantity(ctx context.Context, model string, amount int32) error
}
