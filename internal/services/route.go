package services

import (
	"order-cluster-service/internal/domain"
	"order-cluster-service/internal/geo"
)

// optimizeRoute builds a visiting order for a cluster's members by
// repeated nearest-neighbor selection starting from the cluster center.
//
// At each step the unvisited order nearest to the current position wins,
// ties broken by list order. Clusters of two or fewer members keep their
// input order since there is nothing to reorder. The returned distance
// is the sum of consecutive legs beginning at the start point.
//
// O(n²) in the member count, bounded by MaxClusterSize.
func (e *Engine) optimizeRoute(start domain.Point, orders []domain.ClusterableOrder) ([]domain.ClusterableOrder, float64) {
	route := make([]domain.ClusterableOrder, 0, len(orders))

	if len(orders) <= 2 {
		route = append(route, orders...)
		return route, routeDistanceKm(start, route)
	}

	unvisited := make([]domain.ClusterableOrder, len(orders))
	copy(unvisited, orders)

	current := start
	for len(unvisited) > 0 {
		best := 0
		bestDist := geo.Distance(current, unvisited[0].Location)

		// Strict comparison keeps the earliest entry on ties.
		for i := 1; i < len(unvisited); i++ {
			if d := geo.Distance(current, unvisited[i].Location); d < bestDist {
				best = i
				bestDist = d
			}
		}

		next := unvisited[best]
		route = append(route, next)
		unvisited = append(unvisited[:best], unvisited[best+1:]...)
		current = next.Location
	}

	return route, routeDistanceKm(start, route)
}

// routeDistanceKm sums the consecutive leg distances of a route,
// starting from the given point.
func routeDistanceKm(start domain.Point, route []domain.ClusterableOrder) float64 {
	total := 0.0
	current := start
	for _, o := range route {
		total += geo.Distance(current, o.Location)
		current = o.Location
	}
	return total
}
