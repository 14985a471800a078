package receiving

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant is one physical unit delivered against a purchase order.
type Variant struct {
	Barcode     string `json:"barcode" validate:"required"`
	ProductCode string `json:"productCode" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Size        string `json:"size" validate:"required"`
}

// ReceiveRequest carries the variants delivered for an order.
type ReceiveRequest struct {
	OrderID  int64     `json:"orderID" validate:"required,gt=0"`
	Variants []Variant `json:"variants" validate:"dive"`
}

// SkipReason explains why a variant was not stocked.
type SkipReason string

const (
	SkipDuplicateBarcode SkipReason = "duplicate_barcode"
	SkipProductNotFound  SkipReason = "product_not_found"
)

type SkippedVariant struct {
	Barcode string     `json:"barcode"`
	Reason  SkipReason `json:"reason"`
}

const (
	ResultSuccess = "success"
	ResultPartial = "partial"
)

// ReceiveResult reports what happened to each submitted variant. Status is "success" only
// when every variant was stocked and the order moved to Delivered.
type ReceiveResult struct {
	Message   string           `json:"message"`
	Status    string           `json:"status"`
	OrderID   int64            `json:"orderID"`
	Processed int              `json:"processed"`
	Skipped   []SkippedVariant `json:"skipped,omitempty"`
}

// OrderLine is the raw row behind the order status listings.
type OrderLine struct {
	ProductName string          `db:"product_name"`
	Category    string          `db:"category"`
	Size        string          `db:"size"`
	Quantity    decimal.Decimal `db:"order_quantity"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	OrderDate   time.Time       `db:"order_date"`
	Status      string          `db:"order_status"`
}

// OrderDisplay is the flat record shown in the frontend status dropdowns.
type OrderDisplay struct {
	ProductName string  `json:"Product Name"`
	Category    string  `json:"Category"`
	Size        string  `json:"Size"`
	Quantity    float64 `json:"Quantity"`
	TotalPrice  float64 `json:"Total Price"`
	Date        string  `json:"Date"`
	Status      string  `json:"Status"`
}

const displayDateLayout = "01-02-2006 03:04 PM"

func (l OrderLine) Display() OrderDisplay {
	return OrderDisplay{
		ProductName: l.ProductName,
		Category:    l.Category,
		Size:        l.Size,
		Quantity:    l.Quantity.InexactFloat64(),
		TotalPrice:  l.TotalPrice.InexactFloat64(),
		Date:        l.OrderDate.Format(displayDateLayout),
		Status:      l.Status,
	}
}

// DeliveredOrder is an order waiting to be marked as received.
type DeliveredOrder struct {
	OrderID     int64           `db:"order_id" json:"order_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Category    string          `db:"category" json:"category"`
	Size        string          `db:"size" json:"size"`
	Quantity    decimal.Decimal `db:"order_quantity" json:"quantity"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
	StatusDate  time.Time       `db:"status_date" json:"status_date"`
	OrderStatus string          `db:"order_status" json:"order_status"`
}
