package vms

// OrderPayload is the purchase order forwarded to the VMS. Optional fields are only
// populated for manually created orders.
type OrderPayload struct {
	OrderID            int64  `json:"orderID"`
	ProductID          int64  `json:"productID"`
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription"`
	Size               string `json:"size"`
	Color              string `json:"color"`
	Category           string `json:"category"`
	Quantity           int64  `json:"quantity"`
	WarehouseID        int64  `json:"warehouseID"`
	WarehouseName      string `json:"warehouseName,omitempty"`
	WarehouseAddress   string `json:"warehouseAddress,omitempty"`
	VendorID           int64  `json:"vendorID"`
	VendorName         string `json:"vendorName"`
	OrderDate          string `json:"orderDate"`
	ExpectedDate       string `json:"expectedDate"`
	UserID             *int64 `json:"userID,omitempty"`
	UserName           string `json:"userName,omitempty"`
}

// StatusUpdate notifies the VMS that an order changed status on the IMS side.
type StatusUpdate struct {
	OrderID     int64  `json:"orderID"`
	OrderStatus string `json:"orderStatus"`
}
