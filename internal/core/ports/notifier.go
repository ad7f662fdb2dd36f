package ports

import (
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
)

// StatusChangedEvent is the ephemeral message produced after every committed
// status change. It is never persisted; it exists only in transit to the
// notification transport.
type StatusChangedEvent struct {
	// OrderID identifies the order the change applies to.
	OrderID kernel.UUID

	// Status is the new status after the committed transition.
	Status order.Status

	// Extra carries optional attributes, e.g. the assigned agent identifier
	// on the claim edge. May be nil.
	Extra map[string]any
}

// Notifier is the notification transport consumed by the core. Delivery is
// best-effort: the transport fans each event out to all currently connected
// global subscribers and, independently, to subscribers of the matching
// order-scoped channel, with no backlog or replay for late joiners.
//
// Publish is called synchronously, in-process, immediately after each
// successful store commit, so events for the same order are published in
// commit order. Publish must never fail the triggering operation; transport
// problems are absorbed (and logged) by the implementation.
type Notifier interface {
	Publish(event StatusChangedEvent)
}
