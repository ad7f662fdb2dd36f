package commands

import (
	"errors"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/errs"
	"swiftserve/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand represents a customer checking out a single-restaurant
// cart into a persisted order. The cart itself (a session concern) is
// resolved into line-item snapshots before the command is built.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(orderID, actor, restaurantID, lines,
//	    "Alice", "555-0134", "12 Birch Lane")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actor        account.Actor
	restaurantID kernel.UUID
	lines        []order.LineItem

	deliveryName    string
	deliveryPhone   string
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates identifiers, the actor, and that at least one line is present;
// contact details are validated by the Order aggregate on creation.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	actor account.Actor,
	restaurantID kernel.UUID,
	lines []order.LineItem,
	deliveryName, deliveryPhone, deliveryAddress string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		deliveryName:    deliveryName,
		deliveryPhone:   deliveryPhone,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setRestaurantID(restaurantID),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the order being created.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the authenticated customer placing the order.
func (c PlaceOrderCommand) Actor() account.Actor {
	return c.actor
}

// RestaurantID returns the restaurant the cart was built from.
func (c PlaceOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Lines returns the line-item snapshots to persist with the order.
func (c PlaceOrderCommand) Lines() []order.LineItem {
	return c.lines
}

// DeliveryName returns the recipient name captured at checkout.
func (c PlaceOrderCommand) DeliveryName() string {
	return c.deliveryName
}

// DeliveryPhone returns the recipient phone captured at checkout.
func (c PlaceOrderCommand) DeliveryPhone() string {
	return c.deliveryPhone
}

// DeliveryAddress returns the delivery address captured at checkout.
func (c PlaceOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *PlaceOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []order.LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	c.lines = lines
	return nil
}
