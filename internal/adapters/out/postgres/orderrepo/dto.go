// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the two hot access paths: the claimable set (status + agent)
// and per-customer history.
type OrderDTO struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	AgentID         *uuid.UUID    `gorm:"type:uuid;index"`
	Lines           []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalCents      int64         `gorm:"type:bigint;not null"`
	DeliveryName    string        `gorm:"type:varchar(255);not null"`
	DeliveryPhone   string        `gorm:"type:varchar(64);not null"`
	DeliveryAddress string        `gorm:"type:varchar(512);not null"`
	Status          int           `gorm:"type:int;not null;index"`
	CreatedAt       time.Time     `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents the database structure for persisting line-item
// snapshots. Rows are created with their order and never updated: later menu
// edits must not alter historical orders.
type LineItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID     uuid.UUID `gorm:"type:uuid;not null"`
	Name           string    `gorm:"type:varchar(255);not null"`
	UnitPriceCents int64     `gorm:"type:bigint;not null"`
	Quantity       int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for line-item snapshots.
func (LineItemDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the optional agent assignment and the
// line-item snapshots.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var agentID *uuid.UUID
	if id := aggregate.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	lines := make([]LineItemDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, LineItemDTO{
			ID:             uuid.New(),
			OrderID:        orderID,
			MenuItemID:     line.MenuItemID().Bytes(),
			Name:           line.Name(),
			UnitPriceCents: line.UnitPrice().Cents(),
			Quantity:       line.Quantity(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		CustomerID:      aggregate.CustomerID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		AgentID:         agentID,
		Lines:           lines,
		TotalCents:      aggregate.Total().Cents(),
		DeliveryName:    aggregate.DeliveryName(),
		DeliveryPhone:   aggregate.DeliveryPhone(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, agent assignment and
// line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	lines := make([]order.LineItem, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, agentID, lines, total,
		dto.DeliveryName, dto.DeliveryPhone, dto.DeliveryAddress,
		order.Status(dto.Status), dto.CreatedAt,
	)
}

// lineToDomain converts a line-item DTO to its domain snapshot.
func lineToDomain(dto LineItemDTO) (order.LineItem, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.LineItem{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPriceCents)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(menuItemID, dto.Name, unitPrice, dto.Quantity)
}
