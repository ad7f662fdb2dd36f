package queries

import (
	"context"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentOrdersQueryHandler retrieves an agent's deliveries from the
// database: active runs for the working view, delivered ones for history.
type GetAgentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentOrdersQueryHandler creates a handler for agent delivery queries.
// Requires a GORM database connection for query execution.
func NewGetAgentOrdersQueryHandler(db *gorm.DB) GetAgentOrdersQueryHandler {
	return GetAgentOrdersQueryHandler{db: db}
}

// Handle executes the query for the agent's deliveries in the requested
// scope. Active deliveries come oldest first (pickup order), history newest
// first.
func (h GetAgentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAgentOrdersQuery,
) ([]GetAgentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	status := order.OutForDelivery
	direction := "ASC"
	if query.Scope() == AgentOrdersHistory {
		status = order.Delivered
		direction = "DESC"
	}

	orders := make([]GetAgentOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			r.name,
			r.address,
			o.delivery_address,
			o.status,
			o.total_cents,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.agent_id = ? AND o.status = ?
		ORDER BY o.created_at `+direction,
		query.AgentID().Bytes(), int(status)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAgentOrdersQueryResponse
		var id uuid.UUID
		var rowStatus int
		var totalCents int64

		err = rows.Scan(
			&id,
			&resp.RestaurantName,
			&resp.RestaurantAddress,
			&resp.DeliveryAddress,
			&rowStatus,
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
		resp.Status = order.Status(rowStatus)

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
