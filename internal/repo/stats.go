package repo

// Stats summarizes the products table for the dashboard.
type Stats struct {
	TotalProducts int `json:"total_products" db:"total_products"`
	TotalQuantity int `json:"total_quantity" db:"total_quantity"`
	OutOfStock    int `json:"out_of_stock" db:"out_of_stock"`
}
