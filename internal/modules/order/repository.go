package order

import (
	"context"
	"errors"
	"time"
)

// ErrNoActiveVendor is returned when a manual order cannot be assigned to any vendor.
var ErrNoActiveVendor = errors.New("no active vendor")

// Repository defines data access for purchase orders.
type Repository interface {
	// GetReorderProduct returns the active product and its warehouse, or nil when absent or inactive.
	GetReorderProduct(ctx context.Context, productID int64) (*ReorderProduct, error)

	// CreatePurchaseOrder inserts the header and its single detail row in one transaction
	// and returns the new order ID.
	CreatePurchaseOrder(ctx context.Context, o *PurchaseOrder, d *Detail) (int64, error)

	// CreateManualOrder resolves product, warehouse and vendor and inserts the order in one
	// transaction. It returns 0 when no active product matches name, size and category.
	CreateManualOrder(ctx context.Context, in ManualOrderInput) (int64, error)

	// GetOrderRecord returns the joined order view, or nil when the order does not exist.
	GetOrderRecord(ctx context.Context, orderID int64) (*OrderRecord, error)

	// GetStatus returns the current status; found is false when the order does not exist.
	GetStatus(ctx context.Context, orderID int64) (status Status, found bool, err error)

	// UpdateStatus sets the status and stamps the status date.
	UpdateStatus(ctx context.Context, orderID int64, status Status, at time.Time) error

	// TransitionStatus moves the order from one status to another only if it is still in
	// the from status. It reports whether a row changed.
	TransitionStatus(ctx context.Context, orderID int64, from, to Status, at time.Time) (bool, error)

	// ListPurchaseOrders returns every order with its detail, newest first.
	ListPurchaseOrders(ctx context.Context) ([]PurchaseOrderRow, error)
}
