package commands

import (
	"context"
	"errors"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/model/restaurant"
	"swiftserve/internal/core/domain/services"
	"swiftserve/internal/core/ports"
	"swiftserve/internal/pkg/errs"
)

// StatusTransition reports a committed status change: the status the order
// held before the transition and the status it holds now.
type StatusTransition struct {
	Previous order.Status
	New      order.Status
}

// UpdateOrderStatusCommandHandler applies a proposed status transition.
// It is the single write path for every lifecycle edge: it loads the fresh
// order state, authorizes the caller against the transition policy, applies
// the edge through the aggregate, persists it with a conditional update and
// broadcasts the change only after the commit.
//
// The claim edge (Ready -> OutForDelivery) is routed through the
// repository's atomic Claim so that agents racing on the same order are
// arbitrated by the store; at most one wins, the rest get
// order.ErrAlreadyClaimed.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
	notifier   ports.Notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status
// transitions. Requires a UoWFactory covering orders and restaurants (the
// latter for ownership checks), the transition policy and a Notifier for
// the post-commit broadcast.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	policy services.TransitionPolicy,
	notifier ports.Notifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
	}
}

// Handle processes the status transition command.
//
// Error discrimination follows a fixed precedence: a missing order yields
// errs.ErrObjectNotFound before any authorization check; an unauthorized
// caller yields services.ErrUnauthorized before the edge is evaluated; an
// edge not reachable from the fresh state yields order.ErrInvalidTransition;
// a lost claim race yields order.ErrAlreadyClaimed. On any failure nothing
// is written and no notification is sent.
//
// Returns the previous and new status on success so callers can report the
// transition without a second read.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (StatusTransition, error) {
	if err := cmd.Validate(); err != nil {
		return StatusTransition{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StatusTransition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordRepo := uow.OrderRepository()

	ord, err := ordRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return StatusTransition{}, err
	}

	rest, err := h.restaurantFor(ctx, uow, cmd, ord)
	if err != nil {
		return StatusTransition{}, err
	}

	previous := ord.Status()

	if err = h.policy.Authorize(cmd.Actor(), rest, ord, cmd.Requested()); err != nil {
		return StatusTransition{}, err
	}

	switch cmd.Requested() {
	case order.Preparing:
		if err = ord.Accept(); err != nil {
			return StatusTransition{}, err
		}
		err = ordRepo.UpdateStatus(ctx, ord, previous)
	case order.Rejected:
		if err = ord.Reject(); err != nil {
			return StatusTransition{}, err
		}
		err = ordRepo.UpdateStatus(ctx, ord, previous)
	case order.Ready:
		if err = ord.MarkReady(); err != nil {
			return StatusTransition{}, err
		}
		err = ordRepo.UpdateStatus(ctx, ord, previous)
	case order.OutForDelivery:
		// The store arbitrates: one conditional update assigns the agent
		// and advances the status, or fails with ErrAlreadyClaimed.
		ord, err = ordRepo.Claim(ctx, cmd.OrderID(), cmd.Actor().ID())
	case order.Delivered:
		if err = ord.Complete(cmd.Actor().ID()); err != nil {
			if errors.Is(err, order.ErrNotAssignedAgent) {
				return StatusTransition{}, services.ErrUnauthorized
			}
			return StatusTransition{}, err
		}
		err = ordRepo.UpdateStatus(ctx, ord, previous)
	default:
		return StatusTransition{}, order.NewInvalidTransitionError(previous, cmd.Requested())
	}
	if err != nil {
		return StatusTransition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StatusTransition{}, err
	}

	h.notifier.Publish(h.eventFor(ord))

	return StatusTransition{Previous: previous, New: ord.Status()}, nil
}

// restaurantFor loads the order's restaurant when the caller acts in the
// restaurant role, so the policy can verify ownership. A missing restaurant
// row is passed to the policy as nil and rejected as unauthorized rather
// than surfacing as not-found.
func (h UpdateOrderStatusCommandHandler) restaurantFor(
	ctx context.Context,
	uow UoW,
	cmd UpdateOrderStatusCommand,
	ord *order.Order,
) (*restaurant.Restaurant, error) {
	if !cmd.Actor().Is(account.RoleRestaurant) {
		return nil, nil
	}

	rest, err := uow.RestaurantRepository().Get(ctx, ord.RestaurantID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return rest, nil
}

func (h UpdateOrderStatusCommandHandler) eventFor(ord *order.Order) ports.StatusChangedEvent {
	event := ports.StatusChangedEvent{
		OrderID: ord.ID(),
		Status:  ord.Status(),
	}

	if ord.Status() == order.OutForDelivery {
		if agent := ord.Agent(); agent != nil {
			event.Extra = map[string]any{"agent_id": agent.String()}
		}
	}

	return event
}
