package dto

import "time"

type DeliveryClustersRequest struct {
	SupplierID string `json:"supplier_id"`

	// Optional per-call overrides of the engine defaults.
	MaxClusterRadiusKm *float64 `json:"max_cluster_radius_km"`
	MinClusterSize     *int     `json:"min_cluster_size"`
	MaxClusterSize     *int     `json:"max_cluster_size"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SavingsResponse struct {
	DeliverySavings   float64 `json:"delivery_savings"`
	BulkSavings       float64 `json:"bulk_savings"`
	TotalSavings      float64 `json:"total_savings"`
	TimeSavingsHours  float64 `json:"time_savings_hours"`
	SavingsPercentage float64 `json:"savings_percentage"`
}

type SkippedOrderResponse struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type DeliveryClusterResponse struct {
	ClusterID                string          `json:"cluster_id"`
	DeliveryWindow           string          `json:"delivery_window"`
	Center                   PointResponse   `json:"center"`
	OrderIDs                 []string        `json:"order_ids"`
	Route                    []string        `json:"route"`
	RouteDistanceKm          float64         `json:"route_distance_km"`
	TotalAmount              float64         `json:"total_amount"`
	EstimatedDeliveryMinutes int             `json:"estimated_delivery_time_minutes"`
	Savings                  SavingsResponse `json:"savings"`
	CreatedAt                time.Time       `json:"created_at"`
}

type DeliveryClustersResponse struct {
	Clusters            []DeliveryClusterResponse `json:"clusters"`
	UnclusteredOrderIDs []string                  `json:"unclustered_order_ids"`
	SkippedOrders       []SkippedOrderResponse    `json:"skipped_orders"`
}

type BulkClustersRequest struct {
	SupplierID string `json:"supplier_id"`
}

type BulkClusterResponse struct {
	ClusterID        string             `json:"cluster_id"`
	ProductKey       string             `json:"product_key"`
	OrderIDs         []string           `json:"order_ids"`
	ProductTotals    map[string]float64 `json:"product_totals"`
	TotalAmount      float64            `json:"total_amount"`
	EstimatedSavings float64            `json:"estimated_savings"`
	CreatedAt        time.Time          `json:"created_at"`
}

type BulkClustersResponse struct {
	Clusters      []BulkClusterResponse  `json:"clusters"`
	SkippedOrders []SkippedOrderResponse `json:"skipped_orders"`
}
