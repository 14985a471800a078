package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type sqlRepo struct{ db *sqlx.DB }

func NewSQLRepository(db *sqlx.DB) Repository { return &sqlRepo{db: db} }

func (r *sqlRepo) ProductNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names, r.db.Rebind(`
		SELECT DISTINCT product_name FROM products WHERE is_active = ? ORDER BY product_name`), true)
	return names, err
}

func (r *sqlRepo) ProductDetails(ctx context.Context, name string) (*ProductDetails, error) {
	d := &ProductDetails{}
	err := r.db.GetContext(ctx, d, r.db.Rebind(`
		SELECT product_id, product_name, category
		FROM products WHERE product_name = ? AND is_active = ?
		ORDER BY product_id LIMIT 1`), name, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *sqlRepo) ProductSizes(ctx context.Context, name string) ([]string, error) {
	var sizes []string
	err := r.db.SelectContext(ctx, &sizes, r.db.Rebind(`
		SELECT DISTINCT size FROM products WHERE product_name = ? AND is_active = ? ORDER BY size`), name, true)
	return sizes, err
}

func (r *sqlRepo) Warehouses(ctx context.Context) ([]WarehouseOption, error) {
	var out []WarehouseOption
	err := r.db.SelectContext(ctx, &out, `
		SELECT warehouse_name,
		       CONCAT(COALESCE(building, ''), ', ', COALESCE(street, ''), ', ', COALESCE(barangay, ''), ', ',
		              COALESCE(city, ''), ', ', COALESCE(country, ''), ', ', COALESCE(zipcode, '')) AS full_address
		FROM warehouses ORDER BY warehouse_name`)
	return out, err
}
