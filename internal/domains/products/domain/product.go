package domain

import (
	"errors"
	"strings"
	"time"
)

// Category classifies the catalog of an electronics retailer.
type Category string

const (
	CategorySmartphone Category = "Smartphone"
	CategoryLaptop     Category = "Laptop"
	CategoryAppliance  Category = "Appliance"
)

var (
	ErrEmptyModel      = errors.New("product model is required")
	ErrInvalidCategory = errors.New("product category is invalid")
	ErrInvalidPrice    = errors.New("selling price must be greater than zero")
	ErrNegativeStock   = errors.New("quantity cannot go below zero")
	ErrFutureArrival   = errors.New("arrival date cannot be in the future")
)

// Product is the catalog aggregate. The model string is the product
// identity across the whole system.
type Product struct {
	Model        string
	Category     Category
	Quantity     int32
	Details      string
	SellingPrice float64
	ArrivalDate  time.Time
}

// NewProduct validates and builds a catalog entry for an arrival.
func NewProduct(model string, category Category, quantity int32, details string, price float64, arrival time.Time) (*Product, error) {
	p := &Product{Details: strings.TrimSpace(details)}
	if err := p.SetModel(model); err != nil {
		return nil, err
	}
	if err := p.SetCategory(category); err != nil {
		return nil, err
	}
	if err := p.SetSellingPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetArrivalDate(arrival); err != nil {
		return nil, err
	}
	if err := p.AdjustQuantity(quantity); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return ErrEmptyModel
	}
	p.Model = model
	return nil
}

func (p *Product) SetCategory(category Category) error {
	switch category {
	case CategorySmartphone, CategoryLaptop, CategoryAppliance:
		p.Category = category
		return nil
	default:
		return ErrInvalidCategory
	}
}

func (p *Product) SetSellingPrice(price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	p.SellingPrice = price
	return nil
}

// SetArrivalDate defaults a zero arrival to now and rejects future dates.
func (p *Product) SetArrivalDate(arrival time.Time) error {
	if arrival.IsZero() {
		arrival = time.Now()
	}
	if arrival.After(time.Now()) {
		return ErrFutureArrival
	}
	p.ArrivalDate = arrival
	return nil
}

// AdjustQuantity applies a signed stock delta, refusing to go negative.
func (p *Product) AdjustQuantity(delta int32) error {
	next := p.Quantity + delta
	if next < 0 {
		return ErrNegativeStock
	}
	p.Quantity = next
	return nil
}

// Validate re-applies the aggregate invariants before persistence.
func (p *Product) Validate() error {
	if err := p.SetModel(p.Model); err != nil {
		return err
	}
	if err := p.SetCategory(p.Category); err != nil {
		return err
	}
	if err := p.SetSellingPrice(p.SellingPrice); err != nil {
		return err
	}
	if p.Quantity < 0 {
		return ErrNegativeStock
	}
	return p.SetArrivalDate(p.ArrivalDate)
}
