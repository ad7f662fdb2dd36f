package commands

import (
	"errors"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand proposes a single status transition on an order.
// This is the one authoritative path for every lifecycle edge: the
// role-specific action endpoints and the generic status endpoint both build
// this command, so no caller can set a status without full validation.
//
// The requested status is deliberately not validated at construction time:
// an unknown or unreachable status must surface as an invalid transition
// from the handler, not be silently dropped at the boundary.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, actor, order.Preparing)
//	if err != nil {
//	    return err
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	case errors.Is(err, services.ErrUnauthorized):
//	    // caller may not perform this transition
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // edge not reachable from the current state
//	case err != nil:
//	    // store failure; nothing was written
//	default:
//	    log.Printf("order moved %s -> %s", result.Previous, result.New)
//	}
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     account.Actor
	requested order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command proposing a transition of
// the given order to the requested status on behalf of the actor.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	actor account.Actor,
	requested order.Status,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		requested: requested,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being transitioned.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the authenticated caller proposing the transition.
func (c UpdateOrderStatusCommand) Actor() account.Actor {
	return c.actor
}

// Requested returns the proposed target status.
func (c UpdateOrderStatusCommand) Requested() order.Status {
	return c.requested
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
