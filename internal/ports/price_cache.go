package ports

import (
	"context"
	"time"
)

// Cache boundary for reference price quotes.
// A miss is reported as (zero quote, false, nil error).
type PriceCache interface {
	Get(ctx context.Context, commodity string) (PriceQuote, bool, error)
	Put(ctx context.Context, quote PriceQuote, ttl time.Duration) error
}
