package receiving

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgemunganga/ims-backend/internal/database"
	"github.com/georgemunganga/ims-backend/internal/modules/order"
	"github.com/jmoiron/sqlx"
)

type sqlRepo struct{ db *sqlx.DB }

func NewSQLRepository(db *sqlx.DB) Repository { return &sqlRepo{db: db} }

func (r *sqlRepo) RunInTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&sqlTx{tx: tx})
	})
}

const orderLinesQuery = `
	SELECT p.product_name, p.category, p.size, pod.order_quantity,
	       pod.order_quantity * COALESCE(p.unit_price, 0) AS total_price,
	       po.order_date, po.order_status
	FROM purchase_orders po
	JOIN purchase_order_details pod ON pod.order_id = po.order_id
	JOIN products p ON pod.product_id = p.product_id`

func (r *sqlRepo) ListOrders(ctx context.Context, status string) ([]OrderLine, error) {
	var lines []OrderLine
	if status == "" {
		err := r.db.SelectContext(ctx, &lines, orderLinesQuery+` ORDER BY po.order_date DESC, po.order_id DESC`)
		return lines, err
	}
	err := r.db.SelectContext(ctx, &lines, r.db.Rebind(orderLinesQuery+`
		WHERE po.order_status = ? ORDER BY po.order_date DESC, po.order_id DESC`), status)
	return lines, err
}

func (r *sqlRepo) DeliveredOrders(ctx context.Context) ([]DeliveredOrder, error) {
	var out []DeliveredOrder
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT po.order_id, p.product_name, p.category, p.size, pod.order_quantity,
		       pod.order_quantity * COALESCE(p.unit_price, 0) AS total_price,
		       po.status_date, po.order_status
		FROM purchase_orders po
		JOIN purchase_order_details pod ON pod.order_id = po.order_id
		JOIN products p ON pod.product_id = p.product_id
		WHERE po.order_status = ?
		ORDER BY po.status_date DESC`), string(order.StatusDelivered))
	return out, err
}

type sqlTx struct{ tx *sqlx.Tx }

func (t *sqlTx) OrderStatus(ctx context.Context, orderID int64) (string, bool, error) {
	var status string
	err := t.tx.GetContext(ctx, &status, t.tx.Rebind(`SELECT order_status FROM purchase_orders WHERE order_id = ?`), orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

func (t *sqlTx) BarcodeExists(ctx context.Context, barcode string) (bool, error) {
	var n int
	err := t.tx.GetContext(ctx, &n, t.tx.Rebind(`SELECT COUNT(*) FROM product_variants WHERE barcode = ?`), barcode)
	return n > 0, err
}

func (t *sqlTx) FindProductID(ctx context.Context, name, category, size string) (int64, bool, error) {
	var id int64
	err := t.tx.GetContext(ctx, &id, t.tx.Rebind(`
		SELECT product_id FROM products
		WHERE product_name = ? AND category = ? AND size = ?
		ORDER BY product_id LIMIT 1`), name, category, size)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (t *sqlTx) InsertVariant(ctx context.Context, productID int64, barcode, productCode string) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`
		INSERT INTO product_variants (barcode, product_code, is_available, product_id)
		VALUES (?, ?, ?, ?)`), barcode, productCode, true, productID)
	return err
}

func (t *sqlTx) IncrementStock(ctx context.Context, productID int64) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`
		UPDATE products SET current_stock = current_stock + 1 WHERE product_id = ?`), productID)
	return err
}

func (t *sqlTx) SetOrderStatus(ctx context.Context, orderID int64, status string, at time.Time) error {
	_, err := t.tx.ExecContext(ctx, t.tx.Rebind(`
		UPDATE purchase_orders SET order_status = ?, status_date = ? WHERE order_id = ?`), status, at, orderID)
	return err
}
