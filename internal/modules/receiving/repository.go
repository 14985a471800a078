package receiving

import (
	"context"
	"time"
)

// Repository defines data access for receiving and the order listings.
type Repository interface {
	// RunInTx runs fn in a single transaction. Everything fn did is committed when it returns
	// nil and rolled back otherwise.
	RunInTx(ctx context.Context, fn func(tx TxRepository) error) error

	// ListOrders returns order lines, optionally restricted to one status. An empty status lists all orders.
	ListOrders(ctx context.Context, status string) ([]OrderLine, error)

	DeliveredOrders(ctx context.Context) ([]DeliveredOrder, error)
}

// TxRepository holds the statements that make up one receiving transaction.
type TxRepository interface {
	// OrderStatus returns the order's current status; found is false when the order does not exist.
	OrderStatus(ctx context.Context, orderID int64) (status string, found bool, err error)
	BarcodeExists(ctx context.Context, barcode string) (bool, error)
	// FindProductID returns the product matching name, category and size; found is false when none does.
	FindProductID(ctx context.Context, name, category, size string) (id int64, found bool, err error)
	InsertVariant(ctx context.Context, productID int64, barcode, productCode string) error
	IncrementStock(ctx context.Context, productID int64) error
	SetOrderStatus(ctx context.Context, orderID int64, status string, at time.Time) error
}
