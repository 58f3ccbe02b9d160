package services

import (
	"sort"

	"order-cluster-service/internal/domain"
	"order-cluster-service/internal/geo"
)

// A geographic group under construction: admitted members in admission
// order and the centroid as of the last admission.
type geoCluster struct {
	members []poolEntry
	center  domain.Point
}

// buildGeoClusters partitions one time-window bucket into radius- and
// size-bounded groups using greedy seed expansion.
//
// Each round sorts the remaining pool by priority (descending, snapshot
// index as tie-break), pops the first entry as the seed, then scans the
// pool admitting every order within MaxClusterRadiusKm of the current
// center until MaxClusterSize is reached. The center is recomputed as
// the member centroid after every admission, so admission is always
// judged against the center as it stood at that moment.
//
// Groups below MinClusterSize are not emitted: their non-seed members
// return to the pool for later rounds and the seed itself is discarded
// as unclusterable for this run. The returned leftover slice holds the
// discarded seeds.
//
// This is a single-pass greedy heuristic. It guarantees neither a
// minimal cluster count nor a bounded distance of members to the final
// centroid; it does guarantee a deterministic partition for identical
// input and configuration.
func (e *Engine) buildGeoClusters(bucket []poolEntry) (groups []geoCluster, leftover []poolEntry) {
	pool := make([]poolEntry, len(bucket))
	copy(pool, bucket)

	for len(pool) > 0 {
		sort.SliceStable(pool, func(i, j int) bool {
			if pool[i].order.Priority != pool[j].order.Priority {
				return pool[i].order.Priority > pool[j].order.Priority
			}
			return pool[i].index < pool[j].index
		})

		seed := pool[0]
		pool = pool[1:]

		members := []poolEntry{seed}
		center := seed.order.Location

		i := 0
		for i < len(pool) && len(members) < e.cfg.MaxClusterSize {
			d := geo.Distance(center, pool[i].order.Location)
			if d > e.cfg.MaxClusterRadiusKm {
				i++
				continue
			}

			members = append(members, pool[i])
			pool = append(pool[:i], pool[i+1:]...)
			center = memberCentroid(members)
		}

		if len(members) >= e.cfg.MinClusterSize {
			groups = append(groups, geoCluster{members: members, center: center})
			continue
		}

		// Too small: non-seed members go back to the pool for a future
		// seed attempt; the seed is not retried.
		pool = append(pool, members[1:]...)
		leftover = append(leftover, seed)
	}

	return groups, leftover
}

// memberCentroid computes the centroid of the members' locations.
// members is never empty at any call site.
func memberCentroid(members []poolEntry) domain.Point {
	points := make([]domain.Point, 0, len(members))
	for _, m := range members {
		points = append(points, m.order.Location)
	}

	c, err := geo.Centroid(points)
	if err != nil {
		return domain.Point{}
	}
	return c
}
