package queries

import (
	"context"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler retrieves claimable orders from the database.
// The list is advisory: an order shown here may be claimed by another agent
// before the caller acts on it, and the claim itself re-checks atomically.
//
// Example:
//
//	handler := NewGetAvailableOrdersQueryHandler(db)
//	query := NewGetAvailableOrdersQuery()
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get available orders: %v", err)
//	    return err
//	}
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for claimable order queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all ready, unassigned orders.
// Results are sorted oldest first so long-waiting orders surface on top.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			r.name,
			r.address,
			o.delivery_address,
			o.total_cents,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.status = ? AND o.agent_id IS NULL
		ORDER BY o.created_at
	`, int(order.Ready)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableOrdersQueryResponse
		var id uuid.UUID
		var totalCents int64

		err = rows.Scan(
			&id,
			&resp.RestaurantName,
			&resp.RestaurantAddress,
			&resp.DeliveryAddress,
			&totalCents,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		total, moneyErr := kernel.NewMoney(totalCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Total = total

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
