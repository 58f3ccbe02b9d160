package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"order-cluster-service/internal/platform/obs"
	"order-cluster-service/internal/ports"
)

// AgmarkPriceProvider implements PriceReference using the Agmarknet
// open-data API for wholesale commodity (mandi) prices.
//
// It coordinates:
//   - Commodity name normalization
//   - Quote caching with TTL
//   - External API calls with retry/backoff
//   - Static fallback prices when the upstream is unavailable
//
// The provider is safe for concurrent use.
type AgmarkPriceProvider struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	resourceID string
	state      string
	district   string

	cache    ports.PriceCache
	cacheTTL time.Duration
}

func NewAgmarkPriceProvider(apiKey string, cache ports.PriceCache) (*AgmarkPriceProvider, error) {
	if apiKey == "" {
		return nil, errors.New("agmark api key is empty")
	}

	provider := &AgmarkPriceProvider{
		session:    &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.data.gov.in/resource",
		resourceID: "9ef84268-d588-465a-a308-a864a43d0070",
		state:      "Maharashtra",
		district:   "Mumbai",
		cache:      cache,
		cacheTTL:   time.Hour,
	}

	return provider, nil
}

// normalize ensures consistent cache keys and API filters.
func (a *AgmarkPriceProvider) normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

type agmarkResponse struct {
	Records []struct {
		Commodity  string `json:"commodity"`
		ModalPrice string `json:"modal_price"`
		Market     string `json:"market"`
	} `json:"records"`
}

// GetPrice returns a reference quote for one commodity. Cache hits skip
// the upstream entirely; upstream failures degrade to the static
// fallback table rather than erroring, since quotes only feed savings
// estimates.
func (a *AgmarkPriceProvider) GetPrice(ctx context.Context, commodity string) (_ ports.PriceQuote, err error) {
	defer obs.Time(ctx, "agmark.GetPrice")(&err)

	norm := a.normalize(commodity)
	if norm == "" {
		return ports.PriceQuote{}, errors.New("get price: commodity must be non-empty")
	}

	if a.cache != nil {
		quote, ok, cacheErr := a.cache.Get(ctx, norm)
		if cacheErr != nil {
			log.Printf("price cache get failed: commodity=%q err=%v", norm, cacheErr)
		}
		if ok {
			return quote, nil
		}
	}

	quote, fetchErr := a.fetchPrice(ctx, norm)
	if fetchErr != nil {
		if ctx.Err() != nil {
			return ports.PriceQuote{}, ctx.Err()
		}

		log.Printf("agmark fetch failed, using fallback: commodity=%q err=%v", norm, fetchErr)
		fallback, ok := fallbackQuote(norm)
		if !ok {
			return ports.PriceQuote{}, fmt.Errorf("get price: commodity %q: %w", norm, fetchErr)
		}
		return fallback, nil
	}

	if a.cache != nil {
		if cacheErr := a.cache.Put(ctx, quote, a.cacheTTL); cacheErr != nil {
			log.Printf("price cache put failed: commodity=%q err=%v", norm, cacheErr)
		}
	}

	return quote, nil
}

// GetPrices resolves many commodities with bounded concurrency.
func (a *AgmarkPriceProvider) GetPrices(ctx context.Context, commodities []string) (map[string]ports.PriceQuote, error) {
	seen := make(map[string]struct{}, len(commodities))
	uniq := make([]string, 0, len(commodities))
	for _, c := range commodities {
		norm := a.normalize(c)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		uniq = append(uniq, norm)
	}

	quotes := make([]ports.PriceQuote, len(uniq))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	for i, commodity := range uniq {
		i, commodity := i, commodity
		g.Go(func() error {
			q, err := a.GetPrice(ctx, commodity)
			if err != nil {
				return fmt.Errorf("get prices: commodity %q: %w", commodity, err)
			}
			quotes[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]ports.PriceQuote, len(uniq))
	for i, commodity := range uniq {
		out[commodity] = quotes[i]
	}

	return out, nil
}

// fetchPrice queries the Agmarknet API for one commodity and converts
// the modal price from per-quintal to per-kg.
func (a *AgmarkPriceProvider) fetchPrice(ctx context.Context, commodity string) (ports.PriceQuote, error) {
	endpoint := a.baseURL + "/" + a.resourceID

	makeReq := func() (*http.Request, error) {
		req, err := a.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}

		q := req.URL.Query()
		q.Set("api-key", a.apiKey)
		q.Set("format", "json")
		q.Set("limit", "100")
		q.Set("filters[state]", a.state)
		q.Set("filters[district]", a.district)
		q.Set("filters[commodity]", commodity)
		req.URL.RawQuery = q.Encode()

		return req, nil
	}

	resp, err := a.doWithRetry(ctx, makeReq)
	if err != nil {
		return ports.PriceQuote{}, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	var parsed agmarkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.PriceQuote{}, fmt.Errorf("fetch price: decode response: %w", err)
	}

	for _, record := range parsed.Records {
		if a.normalize(record.Commodity) != commodity {
			continue
		}

		raw := strings.ReplaceAll(record.ModalPrice, ",", "")
		perQuintal, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}

		return ports.PriceQuote{
			Commodity:  commodity,
			PricePerKg: perQuintal / 100,
			Market:     record.Market,
			FetchedAt:  time.Now(),
		}, nil
	}

	return ports.PriceQuote{}, fmt.Errorf("fetch price: no record for commodity %q", commodity)
}
