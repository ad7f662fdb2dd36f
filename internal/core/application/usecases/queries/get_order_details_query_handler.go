package queries

import (
	"context"
	"database/sql"
	"errors"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/services"
	"swiftserve/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler retrieves one order's detail view from the
// database and enforces who may see it: the customer who placed it, the
// owner of the restaurant it was placed with, the assigned agent, or any
// agent while the order is still claimable.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDetailsQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle executes the detail query.
//
// Returns errs.ErrObjectNotFound if the order does not exist, or
// services.ErrUnauthorized if the caller is not a party to the order.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	var (
		resp       GetOrderDetailsQueryResponse
		id         uuid.UUID
		customerID uuid.UUID
		ownerID    uuid.UUID
		agentID    sql.Null[uuid.UUID]
		status     int
		totalCents int64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			r.owner_id,
			o.agent_id,
			o.status,
			r.name,
			r.address,
			o.delivery_name,
			o.delivery_phone,
			o.delivery_address,
			o.total_cents,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&ownerID,
		&agentID,
		&status,
		&resp.RestaurantName,
		&resp.RestaurantAddress,
		&resp.DeliveryName,
		&resp.DeliveryPhone,
		&resp.DeliveryAddress,
		&totalCents,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderDetailsQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	resp.Status = order.Status(status)

	if agentID.Valid {
		aID, agentErr := kernel.UUIDFromBytes(agentID.V[:])
		if agentErr != nil {
			return GetOrderDetailsQueryResponse{}, agentErr
		}
		resp.AgentID = &aID
	}

	resp.Total, err = kernel.NewMoney(totalCents)
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	if err = h.authorize(query.Actor(), customerID, ownerID, resp); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	resp.Lines, err = h.loadLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderDetailsQueryHandler) authorize(
	actor account.Actor,
	customerID, ownerID uuid.UUID,
	resp GetOrderDetailsQueryResponse,
) error {
	actorRaw := actor.ID().Bytes()

	switch actor.Role() {
	case account.RoleCustomer:
		if actorRaw == customerID {
			return nil
		}
	case account.RoleRestaurant:
		if actorRaw == ownerID {
			return nil
		}
	case account.RoleAgent:
		if resp.AgentID != nil && resp.AgentID.IsEqual(actor.ID()) {
			return nil
		}
		// Claimable orders are visible to every agent.
		if resp.Status == order.Ready && resp.AgentID == nil {
			return nil
		}
	}

	return services.ErrUnauthorized
}

func (h GetOrderDetailsQueryHandler) loadLines(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderLineResponse, error) {
	lines := make([]OrderLineResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			unit_price_cents,
			quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY name
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLineResponse
		var unitPriceCents int64

		if err = rows.Scan(&line.Name, &unitPriceCents, &line.Quantity); err != nil {
			return nil, err
		}

		unitPrice, moneyErr := kernel.NewMoney(unitPriceCents)
		if moneyErr != nil {
			return nil, moneyErr
		}
		line.UnitPrice = unitPrice
		line.Subtotal = unitPrice.Multiply(line.Quantity)

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
