package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"order-cluster-service/internal/ports"
)

// Redis-backed cache for reference price quotes. Keys are normalized
// commodity names; entries expire after the TTL passed to Put.
type RedisPriceCache struct {
	Client *redis.Client
}

func NewRedisPriceCache(client *redis.Client) *RedisPriceCache {
	return &RedisPriceCache{Client: client}
}

func priceKey(commodity string) string {
	return "price:" + strings.ToLower(strings.TrimSpace(commodity))
}

// Get fetches a cached quote. A missing key is a miss, not an error.
func (c *RedisPriceCache) Get(ctx context.Context, commodity string) (ports.PriceQuote, bool, error) {
	if c.Client == nil {
		return ports.PriceQuote{}, false, errors.New("price cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, priceKey(commodity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.PriceQuote{}, false, nil
	}
	if err != nil {
		return ports.PriceQuote{}, false, fmt.Errorf("get price cache: commodity %q: %w", commodity, err)
	}

	var quote ports.PriceQuote
	if err := json.Unmarshal(raw, &quote); err != nil {
		// A corrupt entry behaves like a miss so it gets rewritten.
		return ports.PriceQuote{}, false, nil
	}

	return quote, true, nil
}

// Put stores a quote with the given TTL.
func (c *RedisPriceCache) Put(ctx context.Context, quote ports.PriceQuote, ttl time.Duration) error {
	if c.Client == nil {
		return errors.New("price cache: client is nil")
	}

	if strings.TrimSpace(quote.Commodity) == "" {
		return errors.New("put price cache: commodity must not be empty")
	}

	raw, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("put price cache: marshal quote for %q: %w", quote.Commodity, err)
	}

	if err := c.Client.Set(ctx, priceKey(quote.Commodity), raw, ttl).Err(); err != nil {
		return fmt.Errorf("put price cache: commodity %q: %w", quote.Commodity, err)
	}

	return nil
}
