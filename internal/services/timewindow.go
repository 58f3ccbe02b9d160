package services

import "order-cluster-service/internal/domain"

// Fixed bucket iteration order keeps cluster IDs and output ordering
// stable across invocations.
var allWindows = []domain.DeliveryWindow{
	domain.WindowMorning,
	domain.WindowAfternoon,
	domain.WindowEvening,
}

// bucketFor selects the pool entries whose delivery window maps to the
// given bucket, preserving their relative snapshot order. Unrecognized
// or missing windows fall into the afternoon bucket.
func bucketFor(pool []poolEntry, window domain.DeliveryWindow) []poolEntry {
	bucket := make([]poolEntry, 0, len(pool))
	for _, entry := range pool {
		if domain.ParseDeliveryWindow(string(entry.order.DeliveryWindow)) == window {
			bucket = append(bucket, entry)
		}
	}
	return bucket
}
