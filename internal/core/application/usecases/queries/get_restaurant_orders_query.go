package queries

import (
	"errors"
	"time"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/guard"
)

var (
	ErrGetRestaurantOrdersQueryIsNotConstructed = errors.New(
		"GetRestaurantOrdersQuery must be created via NewGetRestaurantOrdersQuery constructor",
	)
)

// GetRestaurantOrdersQuery retrieves the orders placed with the restaurant a
// given account owns, newest first. The kitchen dashboard drives its
// accept/reject/ready actions off this list.
type GetRestaurantOrdersQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRestaurantOrdersQuery creates a query for the given owner's restaurant orders.
func NewGetRestaurantOrdersQuery(ownerID kernel.UUID) (GetRestaurantOrdersQuery, error) {
	q := GetRestaurantOrdersQuery{guard: guard.NewConstructorGuard()}
	if err := q.setOwnerID(ownerID); err != nil {
		return GetRestaurantOrdersQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRestaurantOrdersQueryIsNotConstructed if validation fails.
func (q GetRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantOrdersQueryIsNotConstructed)
}

// OwnerID returns the account whose restaurant's orders are requested.
func (q GetRestaurantOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q *GetRestaurantOrdersQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	q.ownerID = ownerID
	return nil
}

// GetRestaurantOrdersQueryResponse represents one order on the kitchen dashboard.
type GetRestaurantOrdersQueryResponse struct {
	ID              kernel.UUID
	Status          order.Status
	Total           kernel.Money
	DeliveryName    string
	DeliveryAddress string
	CreatedAt       time.Time
}
