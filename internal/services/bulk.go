package services

import (
	"sort"
	"strings"

	"order-cluster-service/internal/domain"
)

// How many product names participate in a signature. Order composition
// is a coarse similarity signal, not a full multiset match.
const productKeyParts = 3

// productKey derives a shared-product signature for an order: distinct
// product names lower-cased, sorted, truncated to the first three and
// joined with underscores.
func productKey(items []domain.OrderItem) string {
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(item.ProductName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	sort.Strings(names)
	if len(names) > productKeyParts {
		names = names[:productKeyParts]
	}

	return strings.Join(names, "_")
}

// groupByProducts buckets orders by product signature. Keys are
// returned sorted so that callers iterate deterministically.
func groupByProducts(orders []domain.ClusterableOrder) ([]string, map[string][]domain.ClusterableOrder) {
	groups := make(map[string][]domain.ClusterableOrder)
	for _, o := range orders {
		key := productKey(o.Items)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], o)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, groups
}

// aggregateProducts sums per-product quantities and order amounts
// across a group of orders.
func aggregateProducts(orders []domain.ClusterableOrder) (map[string]float64, float64) {
	totals := make(map[string]float64)
	totalAmount := 0.0

	for _, o := range orders {
		totalAmount += o.TotalAmount
		for _, item := range o.Items {
			totals[item.ProductName] += item.Quantity
		}
	}

	return totals, totalAmount
}
