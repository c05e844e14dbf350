package application

import (
	"context"
	"errors"
	"strings"

	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
	"github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
)

// Service orchestrates the product catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// RegisterArrival records a new model entering the catalog.
func (s *Service) RegisterArrival(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByModel(ctx, product.Model); err == nil {
		return nil, ports.ErrAlreadyExists
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

// ChangeQuantity applies a signed stock delta for restocks or corrections.
func (s *Service) ChangeQuantity(ctx context.Context, model string, delta int32) (*domain.Product, error) {
	if strings.TrimSpace(model) == "" {
		return nil, mapError(domain.ErrEmptyModel)
	}
	return s.repo.AdjustQuantity(ctx, model, delta)
}

// Sell records an over-the-counter sale of the given quantity.
func (s *Service) Sell(ctx context.Context, model string, quantity int32) (*domain.Product, error) {
	if strings.TrimSpace(model) == "" {
		return nil, mapError(domain.ErrEmptyModel)
	}
	if quantity <= 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	return s.repo.AdjustQuantity(ctx, model, -quantity)
}

func (s *Service) GetByModel(ctx context.Context, model string) (*domain.Product, error) {
	if strings.TrimSpace(model) == "" {
		return nil, mapError(domain.ErrEmptyModel)
	}
	return s.repo.GetByModel(ctx, model)
}

// List returns the catalog, optionally narrowed to one category.
func (s *Service) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if strings.TrimSpace(category) == "" {
		return s.repo.List(ctx)
	}
	probe := &domain.Product{}
	if err := probe.SetCategory(domain.Category(category)); err != nil {
		return nil, mapError(err)
	}
	return s.repo.ListByCategory(ctx, probe.Category)
}

func (s *Service) Delete(ctx context.Context, model string) error {
	if strings.TrimSpace(model) == "" {
		return mapError(domain.ErrEmptyModel)
	}
	return s.repo.Delete(ctx, model)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

var _ ports.Service = (*Service)(nil)
