package ports

import (
	"context"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the single source of truth for order status; the two
// conditional operations (UpdateStatus and Claim) are the only mutations and
// both must be single atomic statements so that concurrent callers racing on
// the same order are serialized by the store itself.
type OrderRepository interface {
	// Add persists a new order aggregate and its line-item snapshots
	// atomically. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its line items. Returns errs.ErrObjectNotFound if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus conditionally persists a status change: the write applies
	// only if the stored status still equals expected at the instant of the
	// update. The aggregate carries the new status (and agent reference, for
	// the claim edge).
	//
	// Returns errs.ErrObjectNotFound if the order does not exist, or
	// order.ErrInvalidTransition if the stored status no longer equals
	// expected (a concurrent transition won; re-evaluation against fresh
	// state is the caller's choice). On failure nothing is written.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Claim atomically assigns an agent to a ready, unassigned order,
	// setting status to OutForDelivery and the agent reference in one
	// conditional update. At most one of N concurrent claims succeeds.
	//
	// Returns the claimed order on success; errs.ErrObjectNotFound if the
	// order does not exist; order.ErrAlreadyClaimed if another agent won or
	// the status had already advanced. The winner's identity is never
	// reported to losers.
	Claim(ctx context.Context, id, agentID kernel.UUID) (*order.Order, error)

	// GetAllReadyUnassigned retrieves orders in Ready status with no agent
	// assigned, oldest first. This is the claimable set shown to agents.
	GetAllReadyUnassigned(ctx context.Context) ([]*order.Order, error)
}
