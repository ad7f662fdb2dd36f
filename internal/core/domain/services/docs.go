// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the marketplace system. It implements
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitionPolicy: A domain service authorizing order status transitions
//     against the role/edge permission table
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
