package queries

import (
	"errors"
	"time"

	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/guard"
)

var (
	ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
		"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
	)
)

// GetOrderDetailsQuery retrieves the full detail view of one order: status,
// contact details, restaurant and the line-item snapshots. Access is limited
// to the parties of the order; the handler enforces it.
type GetOrderDetailsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   account.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery creates a query for one order's details on behalf
// of the actor.
func NewGetOrderDetailsQuery(orderID kernel.UUID, actor account.Actor) (GetOrderDetailsQuery, error) {
	q := GetOrderDetailsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setActor(actor),
	); err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderDetailsQueryIsNotConstructed if validation fails.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderDetailsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the caller requesting the details.
func (q GetOrderDetailsQuery) Actor() account.Actor {
	return q.actor
}

func (q *GetOrderDetailsQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetOrderDetailsQuery) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	q.actor = actor
	return nil
}

// GetOrderDetailsQueryResponse is the full detail view of one order.
type GetOrderDetailsQueryResponse struct {
	ID                kernel.UUID
	Status            order.Status
	RestaurantName    string
	RestaurantAddress string
	AgentID           *kernel.UUID
	DeliveryName      string
	DeliveryPhone     string
	DeliveryAddress   string
	Total             kernel.Money
	CreatedAt         time.Time
	Lines             []OrderLineResponse
}

// OrderLineResponse is one line-item snapshot in the detail view.
type OrderLineResponse struct {
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	Subtotal  kernel.Money
}
