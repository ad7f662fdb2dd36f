package order

import (
	"errors"
	"time"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrAlreadyClaimed is returned when an agent loses the race to claim a
	// ready order: another agent was assigned first, or the status had
	// already advanced. The winning agent's identity is not disclosed.
	ErrAlreadyClaimed = errors.New("order already claimed")

	// ErrNotAssignedAgent is returned when an agent other than the assigned
	// one attempts to act on an out-for-delivery order.
	ErrNotAssignedAgent = errors.New("caller is not the assigned agent")
)

// Order represents one customer purchase from one restaurant. It is the
// aggregate root managing the lifecycle from placement through delivery.
//
// Order follows these invariants:
//   - Must have valid customer and restaurant identifiers
//   - Has at least one line item; the total equals the sum of line subtotals
//   - Delivery contact details are captured at checkout and never change
//   - The agent reference is non-nil exactly when status is OutForDelivery
//     or Delivered
//   - Status transitions follow the lifecycle graph enforced by Status
//   - Can only be created through NewOrder or RestoreOrder
//
// Orders are never deleted; terminal orders are retained as history.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// restaurantID references the restaurant the order was placed with.
	// Exactly one restaurant per order; enforced at the checkout boundary.
	restaurantID kernel.UUID

	// agentID is the assigned delivery agent's ID (nil until claimed)
	agentID *kernel.UUID

	// lines are the immutable line-item snapshots
	lines []LineItem

	// total is the order amount, derived from the lines at creation
	total kernel.Money

	// deliveryName, deliveryPhone and deliveryAddress are the contact
	// details captured at checkout, immutable after creation
	deliveryName    string
	deliveryPhone   string
	deliveryAddress string

	// createdAt is the placement timestamp, immutable
	createdAt time.Time

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order at checkout. The order starts in Placed
// status with no agent assigned; the total is computed from the line items.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the customer placing the order
//   - restaurantID: the restaurant the cart was built from
//   - lines: at least one line-item snapshot
//   - deliveryName, deliveryPhone, deliveryAddress: contact details captured
//     at checkout
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	lines []LineItem,
	deliveryName, deliveryPhone, deliveryAddress string,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLines(lines),
		o.setDeliveryContact(deliveryName, deliveryPhone, deliveryAddress),
	); err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(0)
	if err != nil {
		return nil, err
	}
	for _, line := range o.lines {
		total = total.Add(line.Subtotal())
	}

	// A cart of maximum-priced lines can push the sum past the Money cap
	// even though every line passed validation on its own; the constructor
	// re-checks the bounds so the total is never negative or overflowed.
	total, err = kernel.NewMoney(total.Cents())
	if err != nil {
		return nil, err
	}
	o.total = total

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts the stored status, total, agent reference and creation timestamp,
// and validates their consistency instead of deriving them.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	agentID *kernel.UUID,
	lines []LineItem,
	total kernel.Money,
	deliveryName, deliveryPhone, deliveryAddress string,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		total:         total,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLines(lines),
		o.setDeliveryContact(deliveryName, deliveryPhone, deliveryAddress),
		status.Validate(),
		status.ValidateCanHaveAgent(agentID != nil),
	); err != nil {
		return nil, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
		agent := *agentID
		o.agentID = &agent
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the identifier of the restaurant the order was
// placed with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Agent returns the assigned delivery agent's ID.
// Returns nil if no agent is assigned.
func (o *Order) Agent() *kernel.UUID {
	return o.agentID
}

// Lines returns the order's line-item snapshots.
func (o *Order) Lines() []LineItem {
	return o.lines
}

// Total returns the order amount.
func (o *Order) Total() kernel.Money {
	return o.total
}

// DeliveryName returns the recipient name captured at checkout.
func (o *Order) DeliveryName() string {
	return o.deliveryName
}

// DeliveryPhone returns the recipient phone captured at checkout.
func (o *Order) DeliveryPhone() string {
	return o.deliveryPhone
}

// DeliveryAddress returns the delivery address captured at checkout.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Accept moves a placed order to Preparing. Performed by the restaurant
// when it takes the order on.
//
// Returns an *InvalidTransitionError if the order is not in Placed status.
// A rejected transition leaves the order completely unchanged.
func (o *Order) Accept() error {
	newStatus, err := o.status.TransitionTo(Preparing)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject moves a placed order to the terminal Rejected status. Performed by
// the restaurant when it declines the order.
//
// Returns an *InvalidTransitionError if the order is not in Placed status.
func (o *Order) Reject() error {
	newStatus, err := o.status.TransitionTo(Rejected)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReady moves a preparing order to Ready, making it visible to delivery
// agents as claimable.
//
// Returns an *InvalidTransitionError if the order is not in Preparing status.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.TransitionTo(Ready)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Assign claims the order for a delivery agent, moving it to OutForDelivery.
//
// This method enforces the following rules:
//   - The agent ID must be valid
//   - The order must be in Ready status
//   - The order must not already have an agent (ErrAlreadyClaimed)
//
// Note: the aggregate-level check alone cannot arbitrate between two agents
// racing on the same stored order; the repository's conditional update is
// the authoritative arbiter. This method keeps the in-memory aggregate
// consistent and rejects obviously stale claims early.
func (o *Order) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.agentID != nil {
		return ErrAlreadyClaimed
	}

	newStatus, err := o.status.TransitionTo(OutForDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.agentID = &agentID
	return nil
}

// Complete marks the order as delivered. Only the assigned agent may
// complete an order.
//
// Returns:
//   - ErrNotAssignedAgent if agentID does not equal the stored agent reference
//   - *InvalidTransitionError if the order is not in OutForDelivery status
func (o *Order) Complete(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.agentID == nil || !o.agentID.IsEqual(agentID) {
		return ErrNotAssignedAgent
	}

	newStatus, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

// maxOrderLines caps a single cart. Together with the Money cap and
// maxLineItemQuantity it keeps the worst-case total inside int64.
const maxOrderLines = 100

func (o *Order) setLines(lines []LineItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	if len(lines) > maxOrderLines {
		return errs.NewValueIsOutOfRangeError("lines", len(lines), 1, maxOrderLines)
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = lines
	return nil
}

func (o *Order) setDeliveryContact(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("deliveryName")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("deliveryPhone")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryName = name
	o.deliveryPhone = phone
	o.deliveryAddress = address
	return nil
}
