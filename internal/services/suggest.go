package services

import (
	"sort"

	"github.com/google/uuid"

	"order-cluster-service/internal/domain"
	"order-cluster-service/internal/geo"
)

// SuggestGroupOrders ranks cross-vendor group purchase opportunities
// around a vendor location.
//
// Pending and confirmed orders within radiusKm of the vendor are grouped
// by product signature; every group with at least two orders from
// distinct vendors becomes a suggestion. Suggestions are ranked by
// potential savings (descending, product key as tie-break) and truncated
// to the configured top N.
func (e *Engine) SuggestGroupOrders(orders []domain.ClusterableOrder, vendorLocation domain.Point, radiusKm float64) SuggestionResult {
	result := SuggestionResult{
		Suggestions: []domain.GroupOrderSuggestion{},
		Skipped:     []SkippedOrder{},
	}

	nearby := make([]domain.ClusterableOrder, 0, len(orders))
	for _, o := range orders {
		if o.Status != domain.StatusPending && o.Status != domain.StatusConfirmed {
			continue
		}
		if reason, ok := skipReason(o); ok {
			result.Skipped = append(result.Skipped, SkippedOrder{OrderID: o.OrderID, Reason: reason})
			continue
		}
		if geo.Distance(vendorLocation, o.Location) <= radiusKm {
			nearby = append(nearby, o)
		}
	}

	expiry := e.now().Add(e.cfg.SuggestionWindow)

	keys, groups := groupByProducts(nearby)
	for _, key := range keys {
		grouped := groups[key]
		if len(grouped) < 2 {
			continue
		}

		vendors := distinctVendors(grouped)
		if len(vendors) < 2 {
			continue
		}

		totals, totalAmount := aggregateProducts(grouped)
		potential := BulkSavings(totalAmount)

		result.Suggestions = append(result.Suggestions, domain.GroupOrderSuggestion{
			SuggestionID:         uuid.NewString(),
			ProductKey:           key,
			ParticipatingVendors: vendors,
			TotalQuantity:        totals,
			TotalAmount:          totalAmount,
			PotentialSavings:     potential,
			SavingsPerVendor:     potential / float64(len(vendors)),
			ExpiryTime:           expiry,
			Status:               "pending",
		})
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		si, sj := result.Suggestions[i], result.Suggestions[j]
		if si.PotentialSavings != sj.PotentialSavings {
			return si.PotentialSavings > sj.PotentialSavings
		}
		return si.ProductKey < sj.ProductKey
	})

	if len(result.Suggestions) > e.cfg.SuggestionTopN {
		result.Suggestions = result.Suggestions[:e.cfg.SuggestionTopN]
	}

	return result
}

// distinctVendors returns the sorted set of vendor IDs in a group.
func distinctVendors(orders []domain.ClusterableOrder) []string {
	seen := make(map[string]struct{}, len(orders))
	vendors := make([]string, 0, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.VendorID]; ok {
			continue
		}
		seen[o.VendorID] = struct{}{}
		vendors = append(vendors, o.VendorID)
	}

	sort.Strings(vendors)
	return vendors
}
