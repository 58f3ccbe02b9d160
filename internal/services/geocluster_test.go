package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"order-cluster-service/internal/config"
	"order-cluster-service/internal/domain"
)

func entryAt(id string, lat, lng float64, priority, index int) poolEntry {
	return poolEntry{
		order: confirmedOrder(id, "v-"+id, lat, lng, 500, domain.WindowAfternoon, priority),
		index: index,
	}
}

func TestBuildGeoClustersSizeInvariant(t *testing.T) {
	cfg := config.Defaults()
	e := testEngine(cfg)

	// Twelve co-located orders: cap at ten, remainder forms a second cluster.
	bucket := make([]poolEntry, 0, 12)
	for i := 0; i < 12; i++ {
		bucket = append(bucket, entryAt(string(rune('a'+i)), 19.00, 72.80, 1, i))
	}

	groups, leftover := e.buildGeoClusters(bucket)

	require.Len(t, groups, 2)
	require.Empty(t, leftover)
	require.Len(t, groups[0].members, 10)
	require.Len(t, groups[1].members, 2)

	for _, g := range groups {
		require.GreaterOrEqual(t, len(g.members), cfg.MinClusterSize)
		require.LessOrEqual(t, len(g.members), cfg.MaxClusterSize)
	}
}

func TestBuildGeoClustersPartition(t *testing.T) {
	e := testEngine(config.Defaults())

	bucket := []poolEntry{
		entryAt("a", 19.00, 72.80, 1, 0),
		entryAt("b", 19.01, 72.81, 2, 1),
		entryAt("c", 19.02, 72.82, 1, 2),
		entryAt("d", 20.50, 74.00, 3, 3),
		entryAt("e", 20.505, 74.005, 1, 4),
	}

	groups, leftover := e.buildGeoClusters(bucket)

	seen := map[string]int{}
	for _, g := range groups {
		for _, m := range g.members {
			seen[m.order.OrderID]++
		}
	}
	for _, entry := range leftover {
		seen[entry.order.OrderID]++
	}

	require.Len(t, seen, 5)
	for id, count := range seen {
		require.Equal(t, 1, count, "order %s assigned %d times", id, count)
	}
}

func TestBuildGeoClustersHighestPrioritySeedsFirst(t *testing.T) {
	e := testEngine(config.Defaults())

	bucket := []poolEntry{
		entryAt("low", 19.00, 72.80, 1, 0),
		entryAt("high", 19.005, 72.805, 5, 1),
	}

	groups, leftover := e.buildGeoClusters(bucket)

	require.Len(t, groups, 1)
	require.Empty(t, leftover)
	require.Equal(t, "high", groups[0].members[0].order.OrderID)
}

func TestBuildGeoClustersSeedDiscardedMembersReturned(t *testing.T) {
	e := testEngine(config.Defaults())

	// "iso" has the highest priority and seeds first, but has no peers in
	// range; it is discarded while the pair still clusters afterwards.
	bucket := []poolEntry{
		entryAt("iso", 21.00, 75.00, 9, 0),
		entryAt("a", 19.00, 72.80, 1, 1),
		entryAt("b", 19.005, 72.805, 1, 2),
	}

	groups, leftover := e.buildGeoClusters(bucket)

	require.Len(t, groups, 1)
	require.ElementsMatch(t,
		[]string{"a", "b"},
		[]string{groups[0].members[0].order.OrderID, groups[0].members[1].order.OrderID},
	)
	require.Len(t, leftover, 1)
	require.Equal(t, "iso", leftover[0].order.OrderID)
}

func TestBuildGeoClustersCentroidTracksAdmissions(t *testing.T) {
	e := testEngine(config.Defaults())

	bucket := []poolEntry{
		entryAt("a", 19.00, 72.80, 1, 0),
		entryAt("b", 19.02, 72.82, 1, 1),
	}

	groups, _ := e.buildGeoClusters(bucket)

	require.Len(t, groups, 1)
	require.InDelta(t, 19.01, groups[0].center.Lat, 1e-9)
	require.InDelta(t, 72.81, groups[0].center.Lng, 1e-9)
}

func TestBuildGeoClustersDeterministic(t *testing.T) {
	e := testEngine(config.Defaults())

	bucket := []poolEntry{
		entryAt("a", 19.00, 72.80, 2, 0),
		entryAt("b", 19.01, 72.81, 2, 1),
		entryAt("c", 19.02, 72.82, 1, 2),
		entryAt("d", 19.03, 72.83, 3, 3),
		entryAt("e", 20.00, 73.50, 1, 4),
	}

	first, firstLeft := e.buildGeoClusters(bucket)
	second, secondLeft := e.buildGeoClusters(bucket)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, memberIDs(first[i]), memberIDs(second[i]))
		require.Equal(t, first[i].center, second[i].center)
	}
	require.Equal(t, len(firstLeft), len(secondLeft))
}

func TestBuildGeoClustersDoesNotMutateInput(t *testing.T) {
	e := testEngine(config.Defaults())

	bucket := []poolEntry{
		entryAt("a", 19.00, 72.80, 1, 0),
		entryAt("b", 19.005, 72.805, 2, 1),
	}
	original := []string{bucket[0].order.OrderID, bucket[1].order.OrderID}

	_, _ = e.buildGeoClusters(bucket)

	require.Equal(t, original, []string{bucket[0].order.OrderID, bucket[1].order.OrderID})
}

func memberIDs(g geoCluster) []string {
	ids := make([]string, 0, len(g.members))
	for _, m := range g.members {
		ids = append(ids, m.order.OrderID)
	}
	return ids
}
