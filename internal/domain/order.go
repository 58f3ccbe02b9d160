package domain

import "time"

// Coarse time-of-day bucket orders are grouped by before geographic clustering.
type DeliveryWindow string

const (
	WindowMorning   DeliveryWindow = "morning"
	WindowAfternoon DeliveryWindow = "afternoon"
	WindowEvening   DeliveryWindow = "evening"
)

// ParseDeliveryWindow maps a raw window value to a known bucket.
// Unrecognized or missing values default to afternoon.
func ParseDeliveryWindow(s string) DeliveryWindow {
	switch DeliveryWindow(s) {
	case WindowMorning, WindowAfternoon, WindowEvening:
		return DeliveryWindow(s)
	default:
		return WindowAfternoon
	}
}

// Order lifecycle states relevant to clustering eligibility.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
)

// A single line item on an order.
type OrderItem struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

// Represents an order eligible for clustering.
// It is an immutable snapshot for the duration of one clustering invocation;
// the engine never writes back to the order store.
type ClusterableOrder struct {
	OrderID        string         `json:"order_id"`
	VendorID       string         `json:"vendor_id"`
	SupplierID     string         `json:"supplier_id"`
	Status         OrderStatus    `json:"status"`
	Location       Point          `json:"location"`
	Items          []OrderItem    `json:"items"`
	TotalAmount    float64        `json:"total_amount"`
	CreatedAt      time.Time      `json:"created_at"`
	DeliveryWindow DeliveryWindow `json:"delivery_window"`
	Priority       int            `json:"priority"`
}
