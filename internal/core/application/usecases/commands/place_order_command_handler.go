package commands

import (
	"context"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/services"
	"swiftserve/internal/core/ports"
)

// PlaceOrderCommandHandler handles the checkout boundary: it persists the
// order and its line-item snapshots atomically and broadcasts the initial
// Placed status after the commit.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is persisted and the Placed event has been fanned out
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and a Notifier
// for the post-commit broadcast.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the place order command.
// Only customers may place orders. The order and its lines are written in
// one transaction; the Placed notification is published only after the
// commit succeeds and can never roll the order back.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().Is(account.RoleCustomer) {
		return services.ErrUnauthorized
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID(),
		cmd.RestaurantID(),
		cmd.Lines(),
		cmd.DeliveryName(),
		cmd.DeliveryPhone(),
		cmd.DeliveryAddress(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(ports.StatusChangedEvent{
		OrderID: newOrder.ID(),
		Status:  newOrder.Status(),
	})

	return nil
}
