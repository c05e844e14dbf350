package catalog

import (
	"context"
	"errors"

	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	productports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
)

var _ cartports.InventoryStore = (*InventoryStore)(nil)

// InventoryStore adapts the products catalog into the inventory port the
// cart engine consumes, translating catalog errors into the cart's
// taxonomy.
type InventoryStore struct {
	products productports.Repository
}

// NewInventoryStore wires the catalog repository behind the cart-facing port.
func NewInventoryStore(products productports.Repository) *InventoryStore {
	return &InventoryStore{products: products}
}

// GetQuantityAndPrice reads the current availability snapshot for a model.
func (s *InventoryStore) GetQuantityAndPrice(ctx context.Context, model string) (cartports.Availability, error) {
	if s == nil || s.products == nil {
		return cartports.Availability{}, errors.New("inventory store not configured")
	}
	product, err := s.products.GetByModel(ctx, model)
	if err != nil {
		if errors.Is(err, productports.ErrNotFound) {
			return cartports.Availability{}, cartports.ErrProductNotFound
		}
		return cartports.Availability{}, err
	}
	return cartports.Availability{
		Model:    product.Model,
		Category: string(product.Category),
		Quantity: product.Quantity,
		Price:    product.SellingPrice,
	}, nil
}

// DecrementQuantity conditionally subtracts stock, one atomic step.
func (s *InventoryStore) DecrementQuantity(ctx context.Context, model string, amount int32) error {
	if s == nil || s.products == nil {
		return errors.New("inventory store not configured")
	}
	if amount <= 0 {
		return nil
	}
	_, err := s.products.AdjustQuantity(ctx, model, -amount)
	if err != nil {
		if errors.Is(err, productports.ErrNotFound) {
			return cartports.ErrProductNotFound
		}
		if errors.Is(err, productports.ErrLowStock) {
			return cartports.ErrInsufficientStock
		}
		return err
	}
	return nil
}
