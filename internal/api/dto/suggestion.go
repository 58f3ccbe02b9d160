package dto

import "time"

type SuggestionsRequest struct {
	Location PointResponse `json:"location"`
	RadiusKm float64       `json:"radius_km"`
}

type SuggestionResponse struct {
	SuggestionID         string             `json:"suggestion_id"`
	ProductKey           string             `json:"product_key"`
	ParticipatingVendors []string           `json:"participating_vendors"`
	TotalQuantity        map[string]float64 `json:"total_quantity"`
	TotalAmount          float64            `json:"total_amount"`
	PotentialSavings     float64            `json:"potential_savings"`
	SavingsPerVendor     float64            `json:"savings_per_vendor"`
	ExpiryTime           time.Time          `json:"expiry_time"`
	Status               string             `json:"status"`

	// Reference per-kg prices for the suggestion's products, when the
	// market reference is reachable. Advisory only.
	ReferencePrices map[string]float64 `json:"reference_prices,omitempty"`
}

type SuggestionsResponse struct {
	Suggestions   []SuggestionResponse   `json:"suggestions"`
	SkippedOrders []SkippedOrderResponse `json:"skipped_orders"`
}

type PriceResponse struct {
	Commodity  string    `json:"commodity"`
	PricePerKg float64   `json:"price_per_kg"`
	Market     string    `json:"market"`
	FetchedAt  time.Time `json:"fetched_at"`
	Fallback   bool      `json:"fallback"`
}
