// Package order provides domain entities and business logic for order
// management in the marketplace system. It implements the Order aggregate
// root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - LineItem: An immutable snapshot of a purchased menu entry
//
// Key business rules:
//   - Orders follow the workflow Placed -> Preparing -> Ready -> OutForDelivery
//     -> Delivered, with Rejected as an alternate terminal reachable from Placed
//   - Transitions are monotonic; there are no backward edges or self-loops
//   - An agent reference is present exactly when an order is out for delivery
//     or delivered
//   - At most one agent is ever assigned to an order; the storage layer's
//     conditional update arbitrates concurrent claims
//   - Line items are snapshots; menu changes never rewrite order history
package order
