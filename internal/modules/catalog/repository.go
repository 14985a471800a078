package catalog

import "context"

// Repository defines read access to products and warehouses.
type Repository interface {
	ProductNames(ctx context.Context) ([]string, error)
	// ProductDetails returns nil when no active product has the name.
	ProductDetails(ctx context.Context, name string) (*ProductDetails, error)
	ProductSizes(ctx context.Context, name string) ([]string, error)
	Warehouses(ctx context.Context) ([]WarehouseOption, error)
}
