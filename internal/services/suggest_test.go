package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"order-cluster-service/internal/config"
	"order-cluster-service/internal/domain"
)

func suggestOrder(id, vendor string, lat, lng, amount float64, items ...domain.OrderItem) domain.ClusterableOrder {
	o := bulkOrder(id, vendor, amount, items...)
	o.Location = domain.Point{Lat: lat, Lng: lng}
	return o
}

func TestSuggestGroupOrders(t *testing.T) {
	e := testEngine(config.Defaults())
	vendorLoc := domain.Point{Lat: 19.00, Lng: 72.80}

	orders := []domain.ClusterableOrder{
		suggestOrder("o1", "v1", 19.00, 72.80, 3000, domain.OrderItem{ProductName: "onion", Quantity: 10}),
		suggestOrder("o2", "v2", 19.01, 72.81, 2500, domain.OrderItem{ProductName: "onion", Quantity: 6}),
	}

	result := e.SuggestGroupOrders(orders, vendorLoc, 10)

	require.Len(t, result.Suggestions, 1)

	s := result.Suggestions[0]
	require.NotEmpty(t, s.SuggestionID)
	require.Equal(t, "onion", s.ProductKey)
	require.Equal(t, []string{"v1", "v2"}, s.ParticipatingVendors)
	require.InDelta(t, 16.0, s.TotalQuantity["onion"], 1e-9)
	require.InDelta(t, 5500.0, s.TotalAmount, 1e-9)
	// 5500 reaches the 10% tier.
	require.InDelta(t, 550.0, s.PotentialSavings, 1e-9)
	require.InDelta(t, 275.0, s.SavingsPerVendor, 1e-9)
	require.Equal(t, "pending", s.Status)
	require.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), s.ExpiryTime)
}

func TestSuggestGroupOrdersRequiresDistinctVendors(t *testing.T) {
	e := testEngine(config.Defaults())
	vendorLoc := domain.Point{Lat: 19.00, Lng: 72.80}

	// Two orders, one vendor: no cross-vendor opportunity.
	orders := []domain.ClusterableOrder{
		suggestOrder("o1", "v1", 19.00, 72.80, 3000, domain.OrderItem{ProductName: "onion", Quantity: 10}),
		suggestOrder("o2", "v1", 19.01, 72.81, 2500, domain.OrderItem{ProductName: "onion", Quantity: 6}),
	}

	result := e.SuggestGroupOrders(orders, vendorLoc, 10)

	require.Empty(t, result.Suggestions)
}

func TestSuggestGroupOrdersRadiusFilter(t *testing.T) {
	e := testEngine(config.Defaults())
	vendorLoc := domain.Point{Lat: 19.00, Lng: 72.80}

	orders := []domain.ClusterableOrder{
		suggestOrder("near", "v1", 19.00, 72.80, 3000, domain.OrderItem{ProductName: "onion", Quantity: 10}),
		// Roughly 300 km away.
		suggestOrder("faraway", "v2", 21.50, 74.50, 2500, domain.OrderItem{ProductName: "onion", Quantity: 6}),
	}

	result := e.SuggestGroupOrders(orders, vendorLoc, 10)

	require.Empty(t, result.Suggestions)
}

func TestSuggestGroupOrdersRankedAndTruncated(t *testing.T) {
	cfg := config.Defaults()
	cfg.SuggestionTopN = 3
	e := testEngine(cfg)
	vendorLoc := domain.Point{Lat: 19.00, Lng: 72.80}

	// Five product groups with increasing combined amounts.
	orders := make([]domain.ClusterableOrder, 0, 10)
	for i := 0; i < 5; i++ {
		product := fmt.Sprintf("product-%d", i)
		amount := float64(1000 * (i + 1))
		orders = append(orders,
			suggestOrder(fmt.Sprintf("a%d", i), "v1", 19.00, 72.80, amount, domain.OrderItem{ProductName: product, Quantity: 1}),
			suggestOrder(fmt.Sprintf("b%d", i), "v2", 19.01, 72.81, amount, domain.OrderItem{ProductName: product, Quantity: 1}),
		)
	}

	result := e.SuggestGroupOrders(orders, vendorLoc, 10)

	require.Len(t, result.Suggestions, 3)
	require.Equal(t, "product-4", result.Suggestions[0].ProductKey)
	require.GreaterOrEqual(t, result.Suggestions[0].PotentialSavings, result.Suggestions[1].PotentialSavings)
	require.GreaterOrEqual(t, result.Suggestions[1].PotentialSavings, result.Suggestions[2].PotentialSavings)
}

func TestSuggestGroupOrdersSkipsMissingLocation(t *testing.T) {
	e := testEngine(config.Defaults())
	vendorLoc := domain.Point{Lat: 19.00, Lng: 72.80}

	noLoc := suggestOrder("noloc", "v1", 0, 0, 3000, domain.OrderItem{ProductName: "onion", Quantity: 10})
	noLoc.Location = domain.Point{}

	orders := []domain.ClusterableOrder{
		noLoc,
		suggestOrder("ok", "v2", 19.00, 72.80, 2500, domain.OrderItem{ProductName: "onion", Quantity: 6}),
	}

	result := e.SuggestGroupOrders(orders, vendorLoc, 10)

	require.Empty(t, result.Suggestions)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, "noloc", result.Skipped[0].OrderID)
}
