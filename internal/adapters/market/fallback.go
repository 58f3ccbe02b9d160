package market

import (
	"time"

	"order-cluster-service/internal/ports"
)

// Static per-kg reference prices used when the upstream is unavailable.
// Values track common Mumbai mandi levels and are intentionally coarse;
// they exist so savings math keeps working during outages.
var fallbackPrices = map[string]float64{
	"onion":       30.0,
	"tomato":      25.0,
	"potato":      20.0,
	"garlic":      80.0,
	"ginger":      120.0,
	"green chili": 60.0,
	"coriander":   40.0,
	"oil":         150.0,
	"turmeric":    200.0,
	"red chili":   180.0,
}

func fallbackQuote(commodity string) (ports.PriceQuote, bool) {
	price, ok := fallbackPrices[commodity]
	if !ok {
		return ports.PriceQuote{}, false
	}

	return ports.PriceQuote{
		Commodity:  commodity,
		PricePerKg: price,
		Market:     "Mumbai",
		FetchedAt:  time.Now(),
		Fallback:   true,
	}, true
}
