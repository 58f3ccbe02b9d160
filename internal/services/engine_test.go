package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"order-cluster-service/internal/config"
	"order-cluster-service/internal/domain"
)

func testEngine(cfg config.Clustering) *Engine {
	e := NewEngine(cfg)
	e.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return e
}

func confirmedOrder(id, vendor string, lat, lng, amount float64, window domain.DeliveryWindow, priority int) domain.ClusterableOrder {
	return domain.ClusterableOrder{
		OrderID:        id,
		VendorID:       vendor,
		SupplierID:     "sup-1",
		Status:         domain.StatusConfirmed,
		Location:       domain.Point{Lat: lat, Lng: lng},
		Items:          []domain.OrderItem{{ProductName: "onion", Quantity: 5}},
		TotalAmount:    amount,
		CreatedAt:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		DeliveryWindow: window,
		Priority:       priority,
	}
}

func TestBuildDeliveryClustersThreeNearbyOrders(t *testing.T) {
	e := testEngine(config.Defaults())

	orders := []domain.ClusterableOrder{
		confirmedOrder("o1", "v1", 19.00, 72.80, 1000, domain.WindowAfternoon, 1),
		confirmedOrder("o2", "v2", 19.01, 72.81, 1000, domain.WindowAfternoon, 1),
		confirmedOrder("o3", "v3", 19.02, 72.82, 1000, domain.WindowAfternoon, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Len(t, result.Clusters, 1)
	require.Empty(t, result.UnclusteredOrderIDs)
	require.Empty(t, result.Skipped)

	c := result.Clusters[0]
	require.Len(t, c.Orders, 3)
	require.Equal(t, domain.WindowAfternoon, c.DeliveryWindow)
	require.InDelta(t, 3000.0, c.TotalAmount, 1e-9)

	// 3*50 individual vs 100+2*20 clustered.
	require.InDelta(t, 10.0, c.Savings.DeliverySavings, 1e-9)
	// 3000 falls in the 5% tier.
	require.InDelta(t, 150.0, c.Savings.BulkSavings, 1e-9)

	// 30 prep + 3*15 stops + 3*10 travel.
	require.Equal(t, 105, c.EstimatedDeliveryMinutes)

	require.Len(t, c.Route, 3)
	require.Greater(t, c.RouteDistanceKm, 0.0)
}

func TestBuildDeliveryClustersSingleOrderUnclustered(t *testing.T) {
	e := testEngine(config.Defaults())

	orders := []domain.ClusterableOrder{
		confirmedOrder("lonely", "v1", 19.00, 72.80, 500, domain.WindowMorning, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Empty(t, result.Clusters)
	require.Equal(t, []string{"lonely"}, result.UnclusteredOrderIDs)
}

func TestBuildDeliveryClustersNoPeerWithinRadius(t *testing.T) {
	e := testEngine(config.Defaults())

	// Two order groups far apart plus one isolated order.
	orders := []domain.ClusterableOrder{
		confirmedOrder("far", "v0", 21.00, 75.00, 500, domain.WindowAfternoon, 1),
		confirmedOrder("a1", "v1", 19.00, 72.80, 500, domain.WindowAfternoon, 1),
		confirmedOrder("a2", "v2", 19.01, 72.81, 500, domain.WindowAfternoon, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Len(t, result.Clusters, 1)
	require.ElementsMatch(t, []string{"a1", "a2"}, clusterOrderIDs(result.Clusters[0]))
	require.Equal(t, []string{"far"}, result.UnclusteredOrderIDs)
}

func TestBuildDeliveryClustersFiltersStatusAndSupplier(t *testing.T) {
	e := testEngine(config.Defaults())

	pending := confirmedOrder("p1", "v1", 19.00, 72.80, 500, domain.WindowAfternoon, 1)
	pending.Status = domain.StatusPending

	otherSupplier := confirmedOrder("s2", "v2", 19.00, 72.80, 500, domain.WindowAfternoon, 1)
	otherSupplier.SupplierID = "sup-2"

	orders := []domain.ClusterableOrder{
		pending,
		otherSupplier,
		confirmedOrder("ok1", "v3", 19.00, 72.80, 500, domain.WindowAfternoon, 1),
		confirmedOrder("ok2", "v4", 19.005, 72.805, 500, domain.WindowAfternoon, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Len(t, result.Clusters, 1)
	require.ElementsMatch(t, []string{"ok1", "ok2"}, clusterOrderIDs(result.Clusters[0]))
}

func TestBuildDeliveryClustersReportsSkippedOrders(t *testing.T) {
	e := testEngine(config.Defaults())

	noLocation := confirmedOrder("noloc", "v1", 0, 0, 500, domain.WindowAfternoon, 1)
	noLocation.Location = domain.Point{}

	zeroQty := confirmedOrder("zeroqty", "v2", 19.00, 72.80, 500, domain.WindowAfternoon, 1)
	zeroQty.Items = []domain.OrderItem{{ProductName: "onion", Quantity: 0}}

	orders := []domain.ClusterableOrder{
		noLocation,
		zeroQty,
		confirmedOrder("ok1", "v3", 19.00, 72.80, 500, domain.WindowAfternoon, 1),
		confirmedOrder("ok2", "v4", 19.005, 72.805, 500, domain.WindowAfternoon, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Len(t, result.Clusters, 1)
	require.Len(t, result.Skipped, 2)
	require.Equal(t, "noloc", result.Skipped[0].OrderID)
	require.Equal(t, "zeroqty", result.Skipped[1].OrderID)
}

func TestBuildDeliveryClustersWindowDefaultsToAfternoon(t *testing.T) {
	e := testEngine(config.Defaults())

	odd := confirmedOrder("odd", "v1", 19.00, 72.80, 500, "midnight", 1)
	normal := confirmedOrder("norm", "v2", 19.005, 72.805, 500, domain.WindowAfternoon, 1)

	result := e.BuildDeliveryClusters([]domain.ClusterableOrder{odd, normal}, "sup-1")

	require.Len(t, result.Clusters, 1)
	require.Equal(t, domain.WindowAfternoon, result.Clusters[0].DeliveryWindow)
	require.ElementsMatch(t, []string{"odd", "norm"}, clusterOrderIDs(result.Clusters[0]))
}

func TestBuildDeliveryClustersSmallWindowBucketDropped(t *testing.T) {
	e := testEngine(config.Defaults())

	// One morning order cannot form a cluster even though afternoon peers exist nearby.
	orders := []domain.ClusterableOrder{
		confirmedOrder("m1", "v1", 19.00, 72.80, 500, domain.WindowMorning, 1),
		confirmedOrder("a1", "v2", 19.00, 72.80, 500, domain.WindowAfternoon, 1),
		confirmedOrder("a2", "v3", 19.005, 72.805, 500, domain.WindowAfternoon, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Len(t, result.Clusters, 1)
	require.Equal(t, []string{"m1"}, result.UnclusteredOrderIDs)
}

func TestBuildDeliveryClustersUniqueIDsWithinRun(t *testing.T) {
	cfg := config.Defaults()
	e := testEngine(cfg)

	// Two clusters in distinct windows share the same timestamp prefix.
	orders := []domain.ClusterableOrder{
		confirmedOrder("m1", "v1", 19.00, 72.80, 500, domain.WindowMorning, 1),
		confirmedOrder("m2", "v2", 19.005, 72.805, 500, domain.WindowMorning, 1),
		confirmedOrder("e1", "v3", 19.00, 72.80, 500, domain.WindowEvening, 1),
		confirmedOrder("e2", "v4", 19.005, 72.805, 500, domain.WindowEvening, 1),
	}

	result := e.BuildDeliveryClusters(orders, "sup-1")

	require.Len(t, result.Clusters, 2)
	require.NotEqual(t, result.Clusters[0].ClusterID, result.Clusters[1].ClusterID)
}

func TestCalculateClusterSavingsZeroAmount(t *testing.T) {
	e := testEngine(config.Defaults())

	s := e.CalculateClusterSavings(3, 0)
	require.Zero(t, s.SavingsPercentage)
	require.Zero(t, s.BulkSavings)
	require.InDelta(t, 10.0, s.DeliverySavings, 1e-9)
	require.InDelta(t, 1.5, s.TimeSavingsHours, 1e-9)
}

func clusterOrderIDs(c domain.DeliveryCluster) []string {
	ids := make([]string, 0, len(c.Orders))
	for _, o := range c.Orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}
