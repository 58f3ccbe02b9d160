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

// ClusterHandler orchestrates snapshot retrieval and the clustering
// pipelines. Handlers stay unaware of concrete adapters; the engine
// itself holds no state between calls.
type ClusterHandler struct {
	Repo ports.OrderRepository
	Cfg  config.Clustering
}

// Delivery runs the delivery clustering pipeline for one supplier.
func (h *ClusterHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DeliveryClustersRequest

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

	supplierID := strings.TrimSpace(req.SupplierID)
	if supplierID == "" {
		writeError(w, r, http.StatusBadRequest, "supplier_id is required")
		return
	}

	cfg, err := applyOverrides(h.Cfg, req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.Repo.ListOrders(r.Context(), ports.OrderFilter{
		Statuses:   []domain.OrderStatus{domain.StatusConfirmed},
		SupplierID: supplierID,
	})
	if err != nil {
		log.Printf("delivery clusters: list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result := services.NewEngine(cfg).BuildDeliveryClusters(orders, supplierID)

	res := dto.DeliveryClustersResponse{
		Clusters:            make([]dto.DeliveryClusterResponse, 0, len(result.Clusters)),
		UnclusteredOrderIDs: result.UnclusteredOrderIDs,
		SkippedOrders:       skippedResponses(result.Skipped),
	}
	for _, c := range result.Clusters {
		res.Clusters = append(res.Clusters, dto.DeliveryClusterResponse{
			ClusterID:                c.ClusterID,
			DeliveryWindow:           string(c.DeliveryWindow),
			Center:                   dto.PointResponse{Lat: c.Center.Lat, Lng: c.Center.Lng},
			OrderIDs:                 orderIDs(c.Orders),
			Route:                    orderIDs(c.Route),
			RouteDistanceKm:          c.RouteDistanceKm,
			TotalAmount:              c.TotalAmount,
			EstimatedDeliveryMinutes: c.EstimatedDeliveryMinutes,
			Savings:                  savingsResponse(c.Savings),
			CreatedAt:                c.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Bulk runs the bulk purchase clustering pipeline.
func (h *ClusterHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BulkClustersRequest

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

	orders, err := h.Repo.ListOrders(r.Context(), ports.OrderFilter{
		Statuses:   []domain.OrderStatus{domain.StatusPending, domain.StatusConfirmed},
		SupplierID: strings.TrimSpace(req.SupplierID),
	})
	if err != nil {
		log.Printf("bulk clusters: list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	result := services.NewEngine(h.Cfg).BuildBulkClusters(orders)

	res := dto.BulkClustersResponse{
		Clusters:      make([]dto.BulkClusterResponse, 0, len(result.Clusters)),
		SkippedOrders: skippedResponses(result.Skipped),
	}
	for _, c := range result.Clusters {
		res.Clusters = append(res.Clusters, dto.BulkClusterResponse{
			ClusterID:        c.ClusterID,
			ProductKey:       c.ProductKey,
			OrderIDs:         orderIDs(c.Orders),
			ProductTotals:    c.ProductTotals,
			TotalAmount:      c.TotalAmount,
			EstimatedSavings: c.EstimatedSavings,
			CreatedAt:        c.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func applyOverrides(cfg config.Clustering, req dto.DeliveryClustersRequest) (config.Clustering, error) {
	if req.MaxClusterRadiusKm != nil {
		if *req.MaxClusterRadiusKm <= 0 || *req.MaxClusterRadiusKm > 100 {
			return cfg, errValidation("max_cluster_radius_km must be between 0 and 100")
		}
		cfg.MaxClusterRadiusKm = *req.MaxClusterRadiusKm
	}
	if req.MinClusterSize != nil {
		if *req.MinClusterSize < 1 {
			return cfg, errValidation("min_cluster_size must be at least 1")
		}
		cfg.MinClusterSize = *req.MinClusterSize
	}
	if req.MaxClusterSize != nil {
		if *req.MaxClusterSize < 1 || *req.MaxClusterSize > 100 {
			return cfg, errValidation("max_cluster_size must be between 1 and 100")
		}
		cfg.MaxClusterSize = *req.MaxClusterSize
	}
	if cfg.MinClusterSize > cfg.MaxClusterSize {
		return cfg, errValidation("min_cluster_size cannot exceed max_cluster_size")
	}
	return cfg, nil
}

type errValidation string

func (e errValidation) Error() string { return string(e) }

func orderIDs(orders []domain.ClusterableOrder) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

func savingsResponse(s domain.Savings) dto.SavingsResponse {
	return dto.SavingsResponse{
		DeliverySavings:   s.DeliverySavings,
		BulkSavings:       s.BulkSavings,
		TotalSavings:      s.TotalSavings,
		TimeSavingsHours:  s.TimeSavingsHours,
		SavingsPercentage: s.SavingsPercentage,
	}
}

func skippedResponses(skipped []services.SkippedOrder) []dto.SkippedOrderResponse {
	out := make([]dto.SkippedOrderResponse, 0, len(skipped))
	for _, s := range skipped {
		out = append(out, dto.SkippedOrderResponse{OrderID: s.OrderID, Reason: s.Reason})
	}
	return out
}
