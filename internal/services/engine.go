package services

import (
	"fmt"
	"time"

	"order-cluster-service/internal/config"
	"order-cluster-service/internal/domain"
)

// Engine runs the order clustering and savings pipelines over immutable
// in-memory snapshots. It holds no shared mutable state: every public
// operation is a pure computation over its inputs, so separate
// invocations may run concurrently as long as each gets its own snapshot.
type Engine struct {
	cfg config.Clustering
	now func() time.Time
}

func NewEngine(cfg config.Clustering) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

// An order excluded from a run, with the reason for exclusion.
// Exclusions are reported in the call summary, never raised as errors.
type SkippedOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// Result of one delivery clustering invocation.
type DeliveryClusterResult struct {
	Clusters            []domain.DeliveryCluster `json:"clusters"`
	UnclusteredOrderIDs []string                 `json:"unclustered_order_ids"`
	Skipped             []SkippedOrder           `json:"skipped_orders"`
}

// Result of one bulk clustering invocation.
type BulkClusterResult struct {
	Clusters []domain.BulkCluster `json:"clusters"`
	Skipped  []SkippedOrder       `json:"skipped_orders"`
}

// Result of one group-order suggestion invocation.
type SuggestionResult struct {
	Suggestions []domain.GroupOrderSuggestion `json:"suggestions"`
	Skipped     []SkippedOrder                `json:"skipped_orders"`
}

// An order carried through the clustering worklist together with its
// position in the original snapshot. The index is the documented
// tie-break that makes every sort in the pipeline deterministic.
type poolEntry struct {
	order domain.ClusterableOrder
	index int
}

// BuildDeliveryClusters groups confirmed orders for one supplier into
// geographically and temporally coherent delivery clusters.
//
// Pipeline: eligibility filter -> time-window partition -> greedy
// geographic clustering -> route optimization -> savings estimation.
// Fewer eligible orders than the minimum cluster size is not an error;
// the result simply carries no clusters.
func (e *Engine) BuildDeliveryClusters(orders []domain.ClusterableOrder, supplierID string) DeliveryClusterResult {
	result := DeliveryClusterResult{
		Clusters:            []domain.DeliveryCluster{},
		UnclusteredOrderIDs: []string{},
		Skipped:             []SkippedOrder{},
	}

	pool := make([]poolEntry, 0, len(orders))
	for i, o := range orders {
		if o.Status != domain.StatusConfirmed {
			continue
		}
		if supplierID != "" && o.SupplierID != supplierID {
			continue
		}

		if reason, ok := skipReason(o); ok {
			result.Skipped = append(result.Skipped, SkippedOrder{OrderID: o.OrderID, Reason: reason})
			continue
		}

		pool = append(pool, poolEntry{order: o, index: i})
	}

	if len(pool) < e.cfg.MinClusterSize {
		for _, entry := range pool {
			result.UnclusteredOrderIDs = append(result.UnclusteredOrderIDs, entry.order.OrderID)
		}
		return result
	}

	createdAt := e.now()
	seq := 0

	for _, window := range allWindows {
		bucket := bucketFor(pool, window)
		if len(bucket) == 0 {
			continue
		}

		// Buckets below the minimum size cannot produce a cluster; their
		// orders are reported unclustered without a geographic pass.
		if len(bucket) < e.cfg.MinClusterSize {
			for _, entry := range bucket {
				result.UnclusteredOrderIDs = append(result.UnclusteredOrderIDs, entry.order.OrderID)
			}
			continue
		}

		groups, leftover := e.buildGeoClusters(bucket)
		for _, entry := range leftover {
			result.UnclusteredOrderIDs = append(result.UnclusteredOrderIDs, entry.order.OrderID)
		}

		for _, g := range groups {
			cluster := e.finalizeCluster(g, window, createdAt, seq)
			result.Clusters = append(result.Clusters, cluster)
			seq++
		}
	}

	return result
}

// BuildBulkClusters groups orders sharing a product signature into bulk
// purchase clusters with estimated wholesale savings.
func (e *Engine) BuildBulkClusters(orders []domain.ClusterableOrder) BulkClusterResult {
	result := BulkClusterResult{
		Clusters: []domain.BulkCluster{},
		Skipped:  []SkippedOrder{},
	}

	eligible := make([]domain.ClusterableOrder, 0, len(orders))
	for _, o := range orders {
		if o.Status != domain.StatusPending && o.Status != domain.StatusConfirmed {
			continue
		}
		if reason, ok := skipReasonItems(o); ok {
			result.Skipped = append(result.Skipped, SkippedOrder{OrderID: o.OrderID, Reason: reason})
			continue
		}
		eligible = append(eligible, o)
	}

	createdAt := e.now()
	seq := 0

	keys, groups := groupByProducts(eligible)
	for _, key := range keys {
		grouped := groups[key]
		if len(grouped) < e.cfg.MinClusterSize {
			continue
		}

		totals, totalAmount := aggregateProducts(grouped)
		result.Clusters = append(result.Clusters, domain.BulkCluster{
			ClusterID:        runID("bulk", createdAt, seq),
			ProductKey:       key,
			Orders:           grouped,
			ProductTotals:    totals,
			TotalAmount:      totalAmount,
			EstimatedSavings: BulkSavings(totalAmount),
			CreatedAt:        createdAt,
		})
		seq++
	}

	return result
}

// CalculateClusterSavings estimates the savings of delivering a group of
// orders together instead of individually.
func (e *Engine) CalculateClusterSavings(orderCount int, totalAmount float64) domain.Savings {
	return ComputeSavings(orderCount, totalAmount)
}

// finalizeCluster turns an accumulated geographic group into an emitted
// DeliveryCluster with its route and savings attached.
func (e *Engine) finalizeCluster(g geoCluster, window domain.DeliveryWindow, createdAt time.Time, seq int) domain.DeliveryCluster {
	members := make([]domain.ClusterableOrder, 0, len(g.members))
	totalAmount := 0.0
	for _, entry := range g.members {
		members = append(members, entry.order)
		totalAmount += entry.order.TotalAmount
	}

	route, routeKm := e.optimizeRoute(g.center, members)

	return domain.DeliveryCluster{
		ClusterID:                runID("cluster", createdAt, seq),
		Orders:                   members,
		Center:                   g.center,
		DeliveryWindow:           window,
		TotalAmount:              totalAmount,
		EstimatedDeliveryMinutes: e.estimateDeliveryMinutes(len(members)),
		Route:                    route,
		RouteDistanceKm:          routeKm,
		Savings:                  ComputeSavings(len(members), totalAmount),
		CreatedAt:                createdAt,
	}
}

// estimateDeliveryMinutes returns prep time plus per-stop service and
// travel allowances for a cluster of n orders.
func (e *Engine) estimateDeliveryMinutes(n int) int {
	return e.cfg.DeliveryPrepBaseMinutes +
		n*e.cfg.PerStopMinutes +
		n*e.cfg.TravelPerStopMinutes
}

// runID builds a time-based identifier with a per-run sequence suffix,
// unique within a single invocation.
func runID(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s_%s_%d", prefix, t.Format("20060102_150405"), seq)
}

// skipReason reports why an order must be excluded from delivery
// clustering, if at all.
func skipReason(o domain.ClusterableOrder) (string, bool) {
	if (o.Location == domain.Point{}) || !o.Location.Valid() {
		return "missing or invalid delivery location", true
	}
	return skipReasonItems(o)
}

// skipReasonItems reports item-level exclusions shared by all pipelines.
func skipReasonItems(o domain.ClusterableOrder) (string, bool) {
	for _, item := range o.Items {
		if item.Quantity > 0 {
			return "", false
		}
	}
	return "no items with positive quantity", true
}
