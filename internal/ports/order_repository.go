package ports

import (
	"context"

	"order-cluster-service/internal/domain"
)

// Filter narrowing which orders a repository returns.
// Zero values mean "no constraint" for that field.
type OrderFilter struct {
	Statuses   []domain.OrderStatus
	SupplierID string
	VendorID   string
}

// Port: a boundary for retrieving order snapshots from a data source.
//
// Implementations must return a consistent point-in-time list; the
// clustering engine performs no coordination with the underlying store.
type OrderRepository interface {
	// Retrieve all orders matching the filter, in stable storage order.
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.ClusterableOrder, error)
}
