package handlers

import (
	"log"
	"net/http"

	"order-cluster-service/internal/api/dto"
	"order-cluster-service/internal/domain"
	"order-cluster-service/internal/ports"
)

// OrderHandler exposes read-only order retrieval endpoints.
type OrderHandler struct {
	Repo ports.OrderRepository
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter := ports.OrderFilter{
		SupplierID: r.URL.Query().Get("supplier_id"),
		VendorID:   r.URL.Query().Get("vendor_id"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Statuses = []domain.OrderStatus{domain.OrderStatus(status)}
	}

	orders, err := h.Repo.ListOrders(r.Context(), filter)
	if err != nil {
		log.Printf("list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{
		Orders: make([]dto.OrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		items := make([]dto.OrderItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, dto.OrderItemResponse{
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
			})
		}

		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderID:        o.OrderID,
			VendorID:       o.VendorID,
			SupplierID:     o.SupplierID,
			Status:         string(o.Status),
			Lat:            o.Location.Lat,
			Lng:            o.Location.Lng,
			Items:          items,
			TotalAmount:    o.TotalAmount,
			CreatedAt:      o.CreatedAt,
			DeliveryWindow: string(o.DeliveryWindow),
			Priority:       o.Priority,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
