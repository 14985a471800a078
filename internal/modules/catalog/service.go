package catalog

import (
	"context"

	"github.com/georgemunganga/ims-backend/internal/apperr"
)

// Service defines the catalog lookups behind the purchase order form.
type Service interface {
	ProductNames(ctx context.Context) ([]string, error)
	ProductDetails(ctx context.Context, name string) (*ProductDetails, error)
	ProductSizes(ctx context.Context, name string) ([]string, error)
	Warehouses(ctx context.Context) ([]WarehouseOption, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ProductNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.ProductNames(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err, "error fetching product names")
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *service) ProductDetails(ctx context.Context, name string) (*ProductDetails, error) {
	d, err := s.repo.ProductDetails(ctx, name)
	if err != nil {
		return nil, apperr.Unexpected(err, "Error fetching product details")
	}
	if d == nil {
		return nil, apperr.NotFound("Product not found.")
	}
	return d, nil
}

func (s *service) ProductSizes(ctx context.Context, name string) ([]string, error) {
	sizes, err := s.repo.ProductSizes(ctx, name)
	if err != nil {
		return nil, apperr.Unexpected(err, "Error fetching product sizes")
	}
	if len(sizes) == 0 {
		return nil, apperr.NotFound("No sizes found for this product.")
	}
	return sizes, nil
}

func (s *service) Warehouses(ctx context.Context) ([]WarehouseOption, error) {
	ws, err := s.repo.Warehouses(ctx)
	if err != nil {
		return nil, apperr.Unexpected(err, "Error fetching warehouses")
	}
	if ws == nil {
		ws = []WarehouseOption{}
	}
	return ws, nil
}
