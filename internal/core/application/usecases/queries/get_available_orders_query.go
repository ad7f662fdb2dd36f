// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection-shaped
// rows straight from the database; they never mutate state.
package queries

import (
	"errors"
	"time"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/pkg/guard"
)

var (
	ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
		"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
	)
)

// GetAvailableOrdersQuery retrieves the claimable set: orders that are ready
// for pickup and have no agent assigned yet. Serves the agent dashboard and
// the polling fallback for clients without a live connection.
//
// Example:
//
//	query := NewGetAvailableOrdersQuery()
//	handler := NewGetAvailableOrdersQueryHandler(db)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available orders: %w", err)
//	}
//
//	fmt.Printf("%d orders waiting for an agent\n", len(available))
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query to retrieve claimable orders.
// This is a parameterless query; the claimable set is global.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableOrdersQueryIsNotConstructed if validation fails.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse represents one claimable order, decorated
// with the pickup restaurant so an agent can decide without a second lookup.
type GetAvailableOrdersQueryResponse struct {
	ID                kernel.UUID
	RestaurantName    string
	RestaurantAddress string
	DeliveryAddress   string
	Total             kernel.Money
	CreatedAt         time.Time
}
