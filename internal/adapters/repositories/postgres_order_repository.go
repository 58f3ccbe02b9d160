package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"order-cluster-service/internal/domain"
	"order-cluster-service/internal/ports"
)

// Postgres-backed implementation of the OrderRepository port.
//
// Rows are validated at this boundary: defaults for delivery window and
// priority are applied here, never inside the clustering core, and rows
// with out-of-range coordinates fail the whole read fast.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// ListOrders returns all orders matching the filter in stable storage order.
func (r *PostgresOrderRepository) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]domain.ClusterableOrder, error) {
	if r.DB == nil {
		return nil, errors.New("postgres order repository: DB is nil")
	}

	query := strings.Builder{}
	query.WriteString(`
	SELECT
		order_id,
		vendor_id,
		supplier_id,
		status,
		lat,
		lng,
		items,
		total_amount,
		created_at,
		delivery_window,
		priority
	FROM orders
	`)

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if len(filter.Statuses) > 0 {
		ph := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			args = append(args, string(s))
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(ph, ",")))
	}

	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		conditions = append(conditions, fmt.Sprintf("supplier_id = $%d", len(args)))
	}

	if filter.VendorID != "" {
		args = append(args, filter.VendorID)
		conditions = append(conditions, fmt.Sprintf("vendor_id = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at, order_id;")

	rows, err := r.DB.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.ClusterableOrder, 0, 64)
	for rows.Next() {
		var (
			o         domain.ClusterableOrder
			status    string
			window    sql.NullString
			priority  sql.NullInt64
			itemsJSON []byte
			createdAt time.Time
		)

		err := rows.Scan(
			&o.OrderID,
			&o.VendorID,
			&o.SupplierID,
			&status,
			&o.Location.Lat,
			&o.Location.Lng,
			&itemsJSON,
			&o.TotalAmount,
			&createdAt,
			&window,
			&priority,
		)
		if err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}

		if !o.Location.Valid() {
			return nil, fmt.Errorf(
				"list orders: order %q has malformed coordinates (%f, %f)",
				o.OrderID, o.Location.Lat, o.Location.Lng,
			)
		}

		if o.TotalAmount < 0 {
			return nil, fmt.Errorf("list orders: order %q has negative total amount", o.OrderID)
		}

		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
				return nil, fmt.Errorf("list orders: order %q: parse items: %w", o.OrderID, err)
			}
		}

		o.Status = domain.OrderStatus(status)
		o.CreatedAt = createdAt
		o.DeliveryWindow = domain.ParseDeliveryWindow(window.String)
		o.Priority = 1
		if priority.Valid {
			o.Priority = int(priority.Int64)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}
