package ports

import (
	"context"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the persistence contract for restaurant
// aggregates. The core reads restaurants to verify ownership before
// restaurant-role transitions and to decorate agent-facing listings;
// restaurant CRUD lives outside the core.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such restaurant exists.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// GetByOwner retrieves the restaurant owned by the given account.
	// Returns errs.ErrObjectNotFound if the account owns no restaurant.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error)
}
