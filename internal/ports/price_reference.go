package ports

import (
	"context"
	"time"
)

// Reference market price for a commodity.
type PriceQuote struct {
	Commodity  string    `json:"commodity"`
	PricePerKg float64   `json:"price_per_kg"`
	Market     string    `json:"market"`
	FetchedAt  time.Time `json:"fetched_at"`
	Fallback   bool      `json:"fallback"`
}

// Contract for retrieving a reference price for a commodity.
// Quotes feed savings estimates only; they are never authoritative.
type PriceReference interface {
	GetPrice(ctx context.Context, commodity string) (PriceQuote, error)
}

// Optional extension of PriceReference that supports batched lookups.
type BulkPriceReference interface {
	PriceReference
	// Return quotes for many commodities at once.
	GetPrices(ctx context.Context, commodities []string) (map[string]PriceQuote, error)
}
