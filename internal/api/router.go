package api

import (
	"net/http"

	"order-cluster-service/internal/api/handlers"
	"order-cluster-service/internal/config"
	"order-cluster-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.OrderRepository, prices ports.PriceReference, cfg config.Clustering) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{Repo: repo}
	clusterHandler := &handlers.ClusterHandler{Repo: repo, Cfg: cfg}
	suggestionHandler := &handlers.SuggestionHandler{Repo: repo, Prices: prices, Cfg: cfg}
	priceHandler := &handlers.PriceHandler{Prices: prices}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/orders", orderHandler.List)
	mux.HandleFunc("/clusters/delivery", clusterHandler.Delivery)
	mux.HandleFunc("/clusters/bulk", clusterHandler.Bulk)
	mux.HandleFunc("/suggestions", suggestionHandler.Suggest)
	mux.HandleFunc("/prices", priceHandler.Get)

	return loggingMiddleware(mux)
}
