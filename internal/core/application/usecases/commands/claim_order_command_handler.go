package commands

import (
	"context"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/services"
	"swiftserve/internal/core/ports"
)

// ClaimOrderCommandHandler handles agent claim bids. The entire claim is a
// single conditional store update (status Ready, no agent assigned), so
// concurrent bids on the same order need no locking in the application
// layer: the store serializes them and exactly one wins.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, notifier)
//	claimed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrAlreadyClaimed) {
//	    // lost the race; refresh the available list
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewClaimOrderCommandHandler creates a handler for claim bids.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes a claim bid. Only agents may claim. On success the order
// is OutForDelivery with the caller assigned, and an order_update carrying
// the agent identifier is broadcast after the commit.
//
// Returns the claimed order; errs.ErrObjectNotFound if the order does not
// exist; order.ErrAlreadyClaimed if another agent won or the order was not
// claimable. A losing bid writes nothing and sends nothing.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.Actor().Is(account.RoleAgent) {
		return nil, services.ErrUnauthorized
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	claimed, err := uow.OrderRepository().Claim(ctx, cmd.OrderID(), cmd.Actor().ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := ports.StatusChangedEvent{
		OrderID: claimed.ID(),
		Status:  claimed.Status(),
	}
	if agent := claimed.Agent(); agent != nil {
		event.Extra = map[string]any{"agent_id": agent.String()}
	}
	h.notifier.Publish(event)

	return claimed, nil
}
