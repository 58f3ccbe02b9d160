package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"order-cluster-service/internal/api/dto"
	"order-cluster-service/internal/config"
	"order-cluster-service/internal/domain"
	"order-cluster-service/internal/ports"
	"order-cluster-service/internal/services"
)

// SuggestionHandler runs the group-order suggestion pipeline and
// optionally enriches results with reference market prices.
type SuggestionHandler struct {
	Repo   ports.OrderRepository
	Prices ports.PriceReference
	Cfg    config.Clustering
}

func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SuggestionsRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	location := domain.Point{Lat: req.Location.Lat, Lng: req.Location.Lng}
	if !location.Valid() {
		writeError(w, r, http.StatusBadRequest, "location is out of range")
		return
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = 10.0
	}
	if radius < 0 || radius > 500 {
		writeError(w, r, http.StatusBadRequest, "radius_km must be between 0 and 500")
		return
	}

	orders, err := h.Repo.ListOrders(r.Context(), ports.OrderFilter{
		Statuses: []domain.OrderStatus{domain.StatusPending, domain.StatusConfirmed},
	})
	if err != nil {
		log.Printf("suggestions: list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result := services.NewEngine(h.Cfg).SuggestGroupOrders(orders, location, radius)

	res := dto.SuggestionsResponse{
		Suggestions:   make([]dto.SuggestionResponse, 0, len(result.Suggestions)),
		SkippedOrders: skippedResponses(result.Skipped),
	}

	quotes := h.referencePrices(r, result.Suggestions)

	for _, s := range result.Suggestions {
		res.Suggestions = append(res.Suggestions, dto.SuggestionResponse{
			SuggestionID:         s.SuggestionID,
			ProductKey:           s.ProductKey,
			ParticipatingVendors: s.ParticipatingVendors,
			TotalQuantity:        s.TotalQuantity,
			TotalAmount:          s.TotalAmount,
			PotentialSavings:     s.PotentialSavings,
			SavingsPerVendor:     s.SavingsPerVendor,
			ExpiryTime:           s.ExpiryTime,
			Status:               s.Status,
			ReferencePrices:      pricesFor(s, quotes),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// referencePrices resolves market quotes for every product appearing in
// the suggestions. A failing price reference degrades to no enrichment;
// quotes are advisory and never block the response.
func (h *SuggestionHandler) referencePrices(r *http.Request, suggestions []domain.GroupOrderSuggestion) map[string]ports.PriceQuote {
	if h.Prices == nil || len(suggestions) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	products := make([]string, 0, 16)
	for _, s := range suggestions {
		for name := range s.TotalQuantity {
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			products = append(products, key)
		}
	}

	// Prefer batched lookups when supported to reduce external API calls.
	if bulk, ok := h.Prices.(ports.BulkPriceReference); ok {
		quotes, err := bulk.GetPrices(r.Context(), products)
		if err != nil {
			log.Printf("suggestions: get reference prices failed: %v", err)
			return nil
		}
		return quotes
	}

	quotes := make(map[string]ports.PriceQuote, len(products))
	for _, p := range products {
		q, err := h.Prices.GetPrice(r.Context(), p)
		if err != nil {
			log.Printf("suggestions: get reference price %q failed: %v", p, err)
			continue
		}
		quotes[p] = q
	}
	return quotes
}

func pricesFor(s domain.GroupOrderSuggestion, quotes map[string]ports.PriceQuote) map[string]float64 {
	if len(quotes) == 0 {
		return nil
	}

	out := make(map[string]float64)
	for name := range s.TotalQuantity {
		if q, ok := quotes[strings.ToLower(name)]; ok {
			out[name] = q.PricePerKg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
