package handlers

import (
	"log"
	"net/http"
	"strings"

	"order-cluster-service/internal/api/dto"
	"order-cluster-service/internal/ports"
)

// PriceHandler exposes the reference market price passthrough.
type PriceHandler struct {
	Prices ports.PriceReference
}

func (h *PriceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	commodity := strings.TrimSpace(r.URL.Query().Get("commodity"))
	if commodity == "" {
		writeError(w, r, http.StatusBadRequest, "commodity is required")
		return
	}

	quote, err := h.Prices.GetPrice(r.Context(), commodity)
	if err != nil {
		log.Printf("get price failed: commodity=%q err=%v", commodity, err)
		writeError(w, r, http.StatusBadGateway, "price reference unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PriceResponse{
		Commodity:  quote.Commodity,
		PricePerKg: quote.PricePerKg,
		Market:     quote.Market,
		FetchedAt:  quote.FetchedAt,
		Fallback:   quote.Fallback,
	})
}
