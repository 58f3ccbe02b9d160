package dto

import "time"

type OrderItemResponse struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

type OrderResponse struct {
	OrderID        string              `json:"order_id"`
	VendorID       string              `json:"vendor_id"`
	SupplierID     string              `json:"supplier_id"`
	Status         string              `json:"status"`
	Lat            float64             `json:"lat"`
	Lng            float64             `json:"lng"`
	Items          []OrderItemResponse `json:"items"`
	TotalAmount    float64             `json:"total_amount"`
	CreatedAt      time.Time           `json:"created_at"`
	DeliveryWindow string              `json:"delivery_window"`
	Priority       int                 `json:"priority"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}
