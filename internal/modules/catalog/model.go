package catalog

// ProductDetails is the projection returned when a product is picked by name.
type ProductDetails struct {
	ProductID   int64  `db:"product_id" json:"productID"`
	ProductName string `db:"product_name" json:"productName"`
	Category    string `db:"category" json:"category"`
}

// WarehouseOption is a warehouse as shown in the order form dropdown.
type WarehouseOption struct {
	Name        string `db:"warehouse_name" json:"warehouseName"`
	FullAddress string `db:"full_address" json:"fullAddress"`
}
