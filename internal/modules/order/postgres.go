package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/ims-backend/internal/database"
	"github.com/jmoiron/sqlx"
)

type sqlRepo struct{ db *sqlx.DB }

func NewSQLRepository(db *sqlx.DB) Repository { return &sqlRepo{db: db} }

func (r *sqlRepo) GetReorderProduct(ctx context.Context, productID int64) (*ReorderProduct, error) {
	p := &ReorderProduct{}
	err := r.db.GetContext(ctx, p, r.db.Rebind(`
		SELECT p.product_id, p.product_name, COALESCE(p.product_description, '') AS product_description,
		       p.size, COALESCE(p.color, '') AS color, p.category,
		       p.reorder_level, p.min_stock_level, w.warehouse_id, w.warehouse_name
		FROM products p
		JOIN warehouses w ON p.warehouse_id = w.warehouse_id
		WHERE p.product_id = ? AND p.is_active = ?`), productID, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *sqlRepo) CreatePurchaseOrder(ctx context.Context, o *PurchaseOrder, d *Detail) (int64, error) {
	var id int64
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		id, err = insertOrder(ctx, tx, o)
		if err != nil {
			return err
		}
		d.OrderID = id
		return insertDetail(ctx, tx, d)
	})
	if err != nil {
		return 0, err
	}
	o.ID = id
	return id, nil
}

func (r *sqlRepo) CreateManualOrder(ctx context.Context, in ManualOrderInput) (int64, error) {
	var id int64
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var productID int64
		err := tx.GetContext(ctx, &productID, tx.Rebind(`
			SELECT product_id FROM products
			WHERE product_name = ? AND size = ? AND category = ? AND is_active = ?
			ORDER BY product_id LIMIT 1`), in.ProductName, in.Size, in.Category, true)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve product: %w", err)
		}

		warehouseID, err := resolveWarehouse(ctx, tx, in.WarehouseName, in.Address)
		if err != nil {
			return err
		}

		var vendorID int64
		err = tx.GetContext(ctx, &vendorID, tx.Rebind(`
			SELECT vendor_id FROM vendors WHERE is_active = ? ORDER BY vendor_id LIMIT 1`), true)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoActiveVendor
		}
		if err != nil {
			return fmt.Errorf("resolve vendor: %w", err)
		}

		id, err = insertOrder(ctx, tx, &PurchaseOrder{
			OrderDate:  in.OrderDate,
			Status:     StatusPending,
			StatusDate: in.StatusDate,
			VendorID:   vendorID,
			UserID:     in.UserID,
		})
		if err != nil {
			return err
		}
		return insertDetail(ctx, tx, &Detail{
			OrderID:       id,
			ProductID:     productID,
			WarehouseID:   warehouseID,
			OrderQuantity: in.Quantity,
			ExpectedDate:  in.ExpectedDate,
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *sqlRepo) GetOrderRecord(ctx context.Context, orderID int64) (*OrderRecord, error) {
	rec := &OrderRecord{}
	err := r.db.GetContext(ctx, rec, r.db.Rebind(`
		SELECT po.order_id, po.order_date,
		       v.vendor_id, v.vendor_name,
		       w.warehouse_id, w.warehouse_name,
		       COALESCE(w.building, '') AS building, COALESCE(w.street, '') AS street,
		       COALESCE(w.barangay, '') AS barangay, COALESCE(w.city, '') AS city,
		       COALESCE(w.country, '') AS country, COALESCE(w.zipcode, '') AS zipcode,
		       p.product_id, p.product_name, COALESCE(p.product_description, '') AS product_description,
		       p.size, COALESCE(p.color, '') AS color, p.category,
		       pod.order_quantity, pod.expected_date,
		       u.user_id, u.first_name, u.last_name
		FROM purchase_orders po
		JOIN vendors v ON po.vendor_id = v.vendor_id
		JOIN purchase_order_details pod ON pod.order_id = po.order_id
		JOIN warehouses w ON pod.warehouse_id = w.warehouse_id
		JOIN products p ON pod.product_id = p.product_id
		LEFT JOIN users u ON po.user_id = u.user_id
		WHERE po.order_id = ?
		ORDER BY pod.detail_id LIMIT 1`), orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *sqlRepo) GetStatus(ctx context.Context, orderID int64) (Status, bool, error) {
	var s Status
	err := r.db.GetContext(ctx, &s, r.db.Rebind(`
		SELECT order_status FROM purchase_orders WHERE order_id = ?`), orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (r *sqlRepo) UpdateStatus(ctx context.Context, orderID int64, status Status, at time.Time) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE purchase_orders SET order_status = ?, status_date = ? WHERE order_id = ?`),
		status, at, orderID)
	return err
}

func (r *sqlRepo) TransitionStatus(ctx context.Context, orderID int64, from, to Status, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE purchase_orders SET order_status = ?, status_date = ?
		WHERE order_id = ? AND order_status = ?`),
		to, at, orderID, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sqlRepo) ListPurchaseOrders(ctx context.Context) ([]PurchaseOrderRow, error) {
	var rows []PurchaseOrderRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT po.order_id, po.order_date, po.order_status, po.status_date,
		       v.vendor_name, p.product_name, p.size, p.category,
		       pod.order_quantity, pod.expected_date, w.warehouse_name
		FROM purchase_orders po
		JOIN vendors v ON po.vendor_id = v.vendor_id
		JOIN purchase_order_details pod ON pod.order_id = po.order_id
		JOIN products p ON pod.product_id = p.product_id
		JOIN warehouses w ON pod.warehouse_id = w.warehouse_id
		ORDER BY po.order_id DESC`)
	return rows, err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func insertOrder(ctx context.Context, tx *sqlx.Tx, o *PurchaseOrder) (int64, error) {
	id, err := database.InsertID(ctx, tx, "order_id", `
		INSERT INTO purchase_orders (order_date, order_status, status_date, vendor_id, user_id)
		VALUES (?, ?, ?, ?, ?)`,
		o.OrderDate, o.Status, o.StatusDate, o.VendorID, o.UserID)
	if err != nil {
		return 0, fmt.Errorf("insert purchase_order: %w", err)
	}
	return id, nil
}

func insertDetail(ctx context.Context, tx *sqlx.Tx, d *Detail) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO purchase_order_details (order_quantity, expected_date, warehouse_id, order_id, product_id)
		VALUES (?, ?, ?, ?, ?)`),
		d.OrderQuantity, d.ExpectedDate, d.WarehouseID, d.OrderID, d.ProductID)
	if err != nil {
		return fmt.Errorf("insert purchase_order_detail: %w", err)
	}
	return nil
}

// resolveWarehouse finds a warehouse by name, creating it from the address when it does not exist.
func resolveWarehouse(ctx context.Context, tx *sqlx.Tx, name string, addr Address) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, tx.Rebind(`
		SELECT warehouse_id FROM warehouses WHERE warehouse_name = ? ORDER BY warehouse_id LIMIT 1`), name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("resolve warehouse: %w", err)
	}
	id, err = database.InsertID(ctx, tx, "warehouse_id", `
		INSERT INTO warehouses (warehouse_name, building, street, barangay, city, country, zipcode)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, addr.Building, addr.Street, addr.Barangay, addr.City, addr.Country, addr.Zipcode)
	if err != nil {
		return 0, fmt.Errorf("insert warehouse: %w", err)
	}
	return id, nil
}
