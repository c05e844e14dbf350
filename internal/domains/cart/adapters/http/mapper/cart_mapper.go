package mapper

import (
	"time"

	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
)

// Cart is the transport-layer shape serialized by the API handlers.
type Cart struct {
	ID          int64      `json:"id"`
	Customer    string     `json:"customer"`
	Paid        bool       `json:"paid"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	Total       float64    `json:"total"`
	Products    []LineItem `json:"products"`
}

// LineItem is one product entry inside a transport cart.
type LineItem struct {
	Model    string  `json:"model"`
	Quantity int32   `json:"quantity"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// FromDomainCart converts a domain cart to the transport representation.
func FromDomainCart(cart *cartdomain.Cart) Cart {
	if cart == nil {
		return Cart{Products: []LineItem{}}
	}
	out := Cart{
		ID:          cart.ID,
		Customer:    cart.CustomerID,
		Paid:        cart.Paid,
		PaymentDate: cart.PaymentDate,
		Total:       cart.Total,
		Products:    make([]LineItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		out.Products = append(out.Products, LineItem{
			Model:    item.ProductModel,
			Quantity: item.Quantity,
			Category: item.Category,
			Price:    item.Price,
		})
	}
	return out
}

// FromDomainCarts converts a list of domain carts.
func FromDomainCarts(carts []*cartdomain.Cart) []Cart {
	out := make([]Cart, 0, len(carts))
	for _, cart := range carts {
		out = append(out, FromDomainCart(cart))
	}
	return out
}
