package domain

import "time"

// Represents a bounded group of orders sharing a delivery window and
// geographic proximity, planned for a single delivery run.
//
// A DeliveryCluster is the output of the clustering pipeline and is
// immutable planning data: it holds the final member set, the running
// centroid at finalization time, and the visiting sequence produced by
// route optimization. Members were admitted against the centroid as it
// stood at their insertion; the final centroid may sit slightly farther
// from early members than the clustering radius.
type DeliveryCluster struct {
	ClusterID                string             `json:"cluster_id"`
	Orders                   []ClusterableOrder `json:"orders"`
	Center                   Point              `json:"center"`
	DeliveryWindow           DeliveryWindow     `json:"delivery_window"`
	TotalAmount              float64            `json:"total_amount"`
	EstimatedDeliveryMinutes int                `json:"estimated_delivery_time_minutes"`
	Route                    []ClusterableOrder `json:"route"`
	RouteDistanceKm          float64            `json:"route_distance_km"`
	Savings                  Savings            `json:"savings"`
	CreatedAt                time.Time          `json:"created_at"`
}

// A group of orders aggregated by shared product signature to qualify
// for wholesale discount tiers. Carries no geographic constraint.
type BulkCluster struct {
	ClusterID        string             `json:"cluster_id"`
	ProductKey       string             `json:"product_key"`
	Orders           []ClusterableOrder `json:"orders"`
	ProductTotals    map[string]float64 `json:"product_totals"`
	TotalAmount      float64            `json:"total_amount"`
	EstimatedSavings float64            `json:"estimated_savings"`
	CreatedAt        time.Time          `json:"created_at"`
}

// A cross-vendor proposal to combine purchases of similar products.
type GroupOrderSuggestion struct {
	SuggestionID         string             `json:"suggestion_id"`
	ProductKey           string             `json:"product_key"`
	ParticipatingVendors []string           `json:"participating_vendors"`
	TotalQuantity        map[string]float64 `json:"total_quantity"`
	TotalAmount          float64            `json:"total_amount"`
	PotentialSavings     float64            `json:"potential_savings"`
	SavingsPerVendor     float64            `json:"savings_per_vendor"`
	ExpiryTime           time.Time          `json:"expiry_time"`
	Status               string             `json:"status"`
}

// Estimated savings breakdown for a group of clustered orders.
type Savings struct {
	DeliverySavings   float64 `json:"delivery_savings"`
	BulkSavings       float64 `json:"bulk_savings"`
	TotalSavings      float64 `json:"total_savings"`
	TimeSavingsHours  float64 `json:"time_savings_hours"`
	SavingsPercentage float64 `json:"savings_percentage"`
}
