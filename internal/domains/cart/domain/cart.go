package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrEmptyCustomer   = errors.New("customer username is required")
	ErrEmptyModel      = errors.New("product model is required")
	ErrInvalidQuantity = errors.New("line item quantity must be greater than zero")
)

// LineItem is one product entry inside a cart. Category and Price are
// snapshotted from the catalog when the line is created, so historical
// carts are unaffected by later price changes.
type LineItem struct {
	ProductModel string
	Quantity     int32
	Category     string
	Price        float64
}

// Cart aggregates the line items a customer selected. A customer has at
// most one cart with Paid == false at any time; paid carts are immutable
// history.
type Cart struct {
	ID          int64
	CustomerID  string
	Paid        bool
	PaymentDate *time.Time
	Total       float64
	Items       []LineItem
}

// EmptyCart is the canonical value returned when a customer has no
// active cart. ID zero marks it as not yet persisted.
func EmptyCart(customerID string) *Cart {
	return &Cart{CustomerID: customerID, Items: []LineItem{}}
}

// NewLineItem validates and builds a snapshot line for a product.
func NewLineItem(model, category string, price float64, quantity int32) (LineItem, error) {
	if strings.TrimSpace(model) == "" {
		return LineItem{}, ErrEmptyModel
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{ProductModel: model, Category: category, Price: price, Quantity: quantity}, nil
}

// Line returns a pointer to the item holding the given model, or nil.
func (c *Cart) Line(model string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ProductModel == model {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// RecomputeTotal rewrites Total as the sum of quantity times snapshot
// price over all current lines, rounded to cents.
func (c *Cart) RecomputeTotal() {
	var sum float64
	for _, item := range c.Items {
		sum += float64(item.Quantity) * item.Price
	}
	c.Total = roundToCents(sum)
}

// MergeLine increments the quantity of an existing line for the model or
// appends a new one, keeping one line per product, then recomputes the
// total.
func (c *Cart) MergeLine(item LineItem) {
	if existing := c.Line(item.ProductModel); existing != nil {
		existing.Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}
	c.RecomputeTotal()
}

// RemoveOneUnit decrements the line for the model by one, dropping the
// line entirely when it reaches zero. It reports whether the model was
// present.
func (c *Cart) RemoveOneUnit(model string) bool {
	for i := range c.Items {
		if c.Items[i].ProductModel != model {
			continue
		}
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
		} else {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		c.RecomputeTotal()
		return true
	}
	return false
}

// ClearLines drops every line item and resets the total. The cart stays
// active.
func (c *Cart) ClearLines() {
	c.Items = c.Items[:0]
	c.RecomputeTotal()
}

// MarkPaid finalizes the cart. Paid carts are never mutated again.
func (c *Cart) MarkPaid(when time.Time) {
	paidAt := when
	c.Paid = true
	c.PaymentDate = &paidAt
}

// Clone returns a deep copy, detaching the items slice and payment date.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = append([]LineItem{}, c.Items...)
	if c.PaymentDate != nil {
		paidAt := *c.PaymentDate
		clone.PaymentDate = &paidAt
	}
	return &clone
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
