package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/georgemunganga/ims-backend/internal/modules/vms"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a purchase order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusRejected  Status = "Rejected"
	StatusToShip    Status = "To Ship"
	StatusDelivered Status = "Delivered"
	StatusReceived  Status = "Received"
)

// Statuses lists every known status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusRejected, StatusToShip, StatusDelivered, StatusReceived}

// ParseStatus accepts the display form ("To Ship") as well as the URL forms ("To-Ship", "ToShip").
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "-", " "))
	if strings.EqualFold(s, "ToShip") {
		return StatusToShip, true
	}
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

const (
	// DefaultColor is used when a manual order does not name a color.
	DefaultColor = "Black"
	// LeadTimeDays is the expected delivery window for every new purchase order.
	LeadTimeDays = 7

	payloadDateLayout     = "2006-01-02"
	payloadDateTimeLayout = "2006-01-02 15:04:05"
)

// ReorderProduct is an active product joined with its warehouse, as read by the stock webhook.
type ReorderProduct struct {
	ProductID          int64  `db:"product_id"`
	ProductName        string `db:"product_name"`
	ProductDescription string `db:"product_description"`
	Size               string `db:"size"`
	Color              string `db:"color"`
	Category           string `db:"category"`
	ReorderLevel       int    `db:"reorder_level"`
	MinStockLevel      int    `db:"min_stock_level"`
	WarehouseID        int64  `db:"warehouse_id"`
	WarehouseName      string `db:"warehouse_name"`
}

// PurchaseOrder is the order header row.
type PurchaseOrder struct {
	ID         int64     `db:"order_id"`
	OrderDate  time.Time `db:"order_date"`
	Status     Status    `db:"order_status"`
	StatusDate time.Time `db:"status_date"`
	VendorID   int64     `db:"vendor_id"`
	UserID     *int64    `db:"user_id"`
}

// Detail is the single line item of a purchase order.
type Detail struct {
	OrderID       int64     `db:"order_id"`
	ProductID     int64     `db:"product_id"`
	WarehouseID   int64     `db:"warehouse_id"`
	OrderQuantity int       `db:"order_quantity"`
	ExpectedDate  time.Time `db:"expected_date"`
}

// ManualOrderInput is what the create-order primitive needs to resolve and persist a manual order.
type ManualOrderInput struct {
	ProductName   string
	Size          string
	Category      string
	Quantity      int
	WarehouseName string
	Address       Address
	UserID        *int64
	OrderDate     time.Time
	ExpectedDate  time.Time
	StatusDate    time.Time
}

// Address is a warehouse street address.
type Address struct {
	Building string `db:"building" json:"building,omitempty"`
	Street   string `db:"street" json:"street,omitempty"`
	Barangay string `db:"barangay" json:"barangay,omitempty"`
	City     string `db:"city" json:"city,omitempty"`
	Country  string `db:"country" json:"country,omitempty"`
	Zipcode  string `db:"zipcode" json:"zipcode,omitempty"`
}

func (a Address) String() string {
	return strings.Join([]string{a.Building, a.Street, a.Barangay, a.City, a.Country, a.Zipcode}, ", ")
}

// OrderRecord is the fully joined view of an order used to build the VMS payload.
type OrderRecord struct {
	OrderID            int64           `db:"order_id"`
	OrderDate          time.Time       `db:"order_date"`
	VendorID           int64           `db:"vendor_id"`
	VendorName         string          `db:"vendor_name"`
	WarehouseID        int64           `db:"warehouse_id"`
	WarehouseName      string          `db:"warehouse_name"`
	Address                            // embedded warehouse address columns
	ProductID          int64           `db:"product_id"`
	ProductName        string          `db:"product_name"`
	ProductDescription string          `db:"product_description"`
	Size               string          `db:"size"`
	Color              string          `db:"color"`
	Category           string          `db:"category"`
	Quantity           decimal.Decimal `db:"order_quantity"`
	ExpectedDate       time.Time       `db:"expected_date"`
	UserID             *int64          `db:"user_id"`
	FirstName          *string         `db:"first_name"`
	LastName           *string         `db:"last_name"`
}

// PurchaseOrderRow is one line of the purchase order listing.
type PurchaseOrderRow struct {
	OrderID       int64           `db:"order_id" json:"orderID"`
	OrderDate     time.Time       `db:"order_date" json:"orderDate"`
	OrderStatus   Status          `db:"order_status" json:"orderStatus"`
	StatusDate    time.Time       `db:"status_date" json:"statusDate"`
	VendorName    string          `db:"vendor_name" json:"vendorName"`
	ProductName   string          `db:"product_name" json:"productName"`
	Size          string          `db:"size" json:"size"`
	Category      string          `db:"category" json:"category"`
	OrderQuantity decimal.Decimal `db:"order_quantity" json:"orderQuantity"`
	ExpectedDate  time.Time       `db:"expected_date" json:"expectedDate"`
	WarehouseName string          `db:"warehouse_name" json:"warehouseName"`
}

// ── Requests ─────────────────────────────────────────────────────────────────

// StockUpdateRequest is the stock webhook body. Pointers distinguish a zero stock from a missing field.
type StockUpdateRequest struct {
	ProductID    *int64 `json:"productID" validate:"required"`
	CurrentStock *int   `json:"currentStock" validate:"required"`
}

// ManualOrderRequest is the payload for creating a purchase order by hand.
type ManualOrderRequest struct {
	ProductName   string `json:"productName" validate:"required"`
	Size          string `json:"size" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	WarehouseName string `json:"warehouseName" validate:"required"`
	Color         string `json:"color,omitempty"`
	Building      string `json:"building,omitempty"`
	Street        string `json:"street,omitempty"`
	Barangay      string `json:"barangay,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	Zipcode       string `json:"zipcode,omitempty"`
	UserID        *int64 `json:"userID,omitempty"`
}

// StatusUpdateRequest is sent by the VMS when it confirms, rejects or ships an order.
type StatusUpdateRequest struct {
	OrderID     int64  `json:"orderID" validate:"required,gt=0"`
	OrderStatus string `json:"orderStatus" validate:"required"`
}

// MarkReceivedRequest marks a delivered order as received.
type MarkReceivedRequest struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
}

// ── Results ──────────────────────────────────────────────────────────────────

// WorkflowResult is returned by both order creation paths.
type WorkflowResult struct {
	Message  string            `json:"message"`
	Payload  *vms.OrderPayload `json:"payload,omitempty"`
	Response json.RawMessage   `json:"response,omitempty"`
}

// StatusResult acknowledges a status change.
type StatusResult struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderID"`
	Status  Status `json:"status"`
}
