package services

import "order-cluster-service/internal/domain"

// Flat cost constants for the savings model, in currency units.
// These are policy values, not derived quantities.
const (
	individualDeliveryCost = 50.0
	clusterBaseCost        = 100.0
	clusterPerStopCost     = 20.0

	timeSavedPerOrderHours = 0.5
)

// Wholesale discount tiers by combined order amount.
const (
	bulkTierLarge  = 10000.0
	bulkTierMedium = 5000.0
	bulkTierSmall  = 2000.0

	bulkRateLarge   = 0.15
	bulkRateMedium  = 0.10
	bulkRateSmall   = 0.05
	bulkRateMinimal = 0.02
)

// DeliverySavings returns the cost saved by serving n orders in one run
// instead of n individual deliveries. Never negative.
func DeliverySavings(n int) float64 {
	individual := float64(n) * individualDeliveryCost
	clustered := clusterBaseCost + float64(n-1)*clusterPerStopCost

	if individual < clustered {
		return 0
	}
	return individual - clustered
}

// BulkSavings returns the estimated wholesale discount for a combined
// order amount using the tiered rate schedule.
func BulkSavings(totalAmount float64) float64 {
	switch {
	case totalAmount >= bulkTierLarge:
		return totalAmount * bulkRateLarge
	case totalAmount >= bulkTierMedium:
		return totalAmount * bulkRateMedium
	case totalAmount >= bulkTierSmall:
		return totalAmount * bulkRateSmall
	default:
		return totalAmount * bulkRateMinimal
	}
}

// TimeSavingsHours estimates hours saved across n combined orders.
func TimeSavingsHours(n int) float64 {
	return float64(n) * timeSavedPerOrderHours
}

// ComputeSavings combines delivery, bulk and time savings for a group
// of orders. A zero total amount yields a zero savings percentage
// rather than a division error.
func ComputeSavings(orderCount int, totalAmount float64) domain.Savings {
	delivery := DeliverySavings(orderCount)
	bulk := BulkSavings(totalAmount)

	pct := 0.0
	if totalAmount > 0 {
		pct = (delivery + bulk) / totalAmount * 100
	}

	return domain.Savings{
		DeliverySavings:   delivery,
		BulkSavings:       bulk,
		TotalSavings:      delivery + bulk,
		TimeSavingsHours:  TimeSavingsHours(orderCount),
		SavingsPercentage: pct,
	}
}
