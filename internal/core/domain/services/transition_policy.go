package services

import (
	"errors"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/model/restaurant"
)

// ErrUnauthorized is returned when a caller's role or identity does not
// permit the requested transition on the given order. It covers wrong-role
// callers, restaurant actions by non-owners, delivery completion by an agent
// other than the assigned one, and state/role combinations outside the
// permitted table.
var ErrUnauthorized = errors.New("caller is not authorized for this transition")

// TransitionPolicy is a domain service that authorizes order status
// transitions. It encodes the single authoritative table of who may move an
// order along which edge:
//
//	Placed -> Preparing          restaurant (owner of the order's restaurant)
//	Placed -> Rejected           restaurant (owner)
//	Preparing -> Ready           restaurant (owner)
//	Ready -> OutForDelivery      agent (order unassigned; storage arbitrates)
//	OutForDelivery -> Delivered  agent (the assigned agent only)
//
// Both the role-specific action endpoints and the generic status endpoint
// consult this policy, so no path can set a status without full validation.
//
// Error discrimination follows the caller-facing taxonomy: a request whose
// role could never produce the requested status yields ErrUnauthorized, as
// does a right-role caller failing an identity or state precondition; a
// requested status that is not reachable for anyone from the current state
// yields order.ErrInvalidTransition.
//
// Example usage:
//
//	policy := services.NewTransitionPolicy()
//	if err := policy.Authorize(actor, rest, ord, order.Preparing); err != nil {
//	    // errors.Is(err, services.ErrUnauthorized) or order.ErrInvalidTransition
//	    return err
//	}
//	// Proceed with the transition
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// edge is a (from, to) pair in the lifecycle graph.
type edge struct {
	from order.Status
	to   order.Status
}

// getPermittedEdges returns the role permitted to perform each edge.
func getPermittedEdges() map[edge]account.Role {
	return map[edge]account.Role{
		{order.Placed, order.Preparing}:         account.RoleRestaurant,
		{order.Placed, order.Rejected}:          account.RoleRestaurant,
		{order.Preparing, order.Ready}:          account.RoleRestaurant,
		{order.Ready, order.OutForDelivery}:     account.RoleAgent,
		{order.OutForDelivery, order.Delivered}: account.RoleAgent,
	}
}

// getRoleTargets returns the statuses a role is ever permitted to set,
// regardless of the current state. Used to distinguish "wrong state for this
// caller" (Unauthorized) from "edge that exists for nobody"
// (InvalidTransition).
func getRoleTargets() map[account.Role][]order.Status {
	return map[account.Role][]order.Status{
		account.RoleRestaurant: {order.Preparing, order.Rejected, order.Ready},
		account.RoleAgent:      {order.OutForDelivery, order.Delivered},
	}
}

// Authorize checks whether actor may move ord to the requested status.
//
// Parameters:
//   - actor: the authenticated caller
//   - rest: the restaurant the order was placed with (ownership check);
//     may be nil for agent edges
//   - ord: the order being transitioned, loaded at its current stored state
//   - requested: the target status
//
// Returns:
//   - nil if the transition is permitted for this caller
//   - ErrUnauthorized if the caller's role/identity does not match the
//     permitted table for this transition
//   - *order.InvalidTransitionError if the requested status is unknown, is a
//     self-loop, or is not an edge anyone may take from the current state
//
// Authorize never mutates the order; a rejected proposal has no side effects.
func (p TransitionPolicy) Authorize(
	actor account.Actor,
	rest *restaurant.Restaurant,
	ord *order.Order,
	requested order.Status,
) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := ord.Validate(); err != nil {
		return err
	}

	current := ord.Status()

	if err := requested.Validate(); err != nil {
		return order.NewInvalidTransitionError(current, requested)
	}
	if requested == current {
		return order.NewInvalidTransitionError(current, requested)
	}

	role, ok := getPermittedEdges()[edge{current, requested}]
	if !ok {
		// Not a permitted edge for anyone from this state. If the caller's
		// role may produce the requested status from some other state, the
		// failure is a wrong state/role combination; otherwise the edge
		// simply does not exist.
		if p.roleMayTarget(actor.Role(), requested) {
			return ErrUnauthorized
		}
		return order.NewInvalidTransitionError(current, requested)
	}

	if !actor.Is(role) {
		return ErrUnauthorized
	}

	switch role {
	case account.RoleRestaurant:
		if rest == nil || rest.Validate() != nil {
			return ErrUnauthorized
		}
		if !rest.ID().IsEqual(ord.RestaurantID()) || !rest.IsOwnedBy(actor.ID()) {
			return ErrUnauthorized
		}
	case account.RoleAgent:
		if requested == order.Delivered {
			agent := ord.Agent()
			if agent == nil || !agent.IsEqual(actor.ID()) {
				return ErrUnauthorized
			}
		}
		// The Ready -> OutForDelivery precondition (order unassigned) is
		// arbitrated atomically by the store's conditional update.
	}

	return nil
}

func (p TransitionPolicy) roleMayTarget(role account.Role, target order.Status) bool {
	for _, candidate := range getRoleTargets()[role] {
		if candidate == target {
			return true
		}
	}
	return false
}
