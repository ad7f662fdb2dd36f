package order

import (
	"errors"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned when a LineItem instance was not
// created through the NewLineItem factory function.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of a purchased menu entry taken at order
// time. It is deliberately decoupled from the live menu: later menu edits or
// deletions never alter historical orders.
//
// LineItem is created atomically with its order and is never mutated or
// deleted independently.
type LineItem struct {
	// menuItemID references the menu entry the snapshot was taken from.
	// The referenced entry may no longer exist.
	menuItemID kernel.UUID

	// name is the menu entry name at order time
	name string

	// unitPrice is the price per unit at order time
	unitPrice kernel.Money

	// quantity is the number of units purchased (at least 1)
	quantity int

	// isConstructed ensures the line item was created via NewLineItem
	isConstructed bool
}

// NewLineItem creates a validated line-item snapshot.
//
// Parameters:
//   - menuItemID: identifier of the menu entry being snapshotted
//   - name: menu entry name at order time (required)
//   - unitPrice: price per unit at order time
//   - quantity: number of units (must be at least 1)
//
// Returns an error if any parameter is invalid.
func NewLineItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	if err := menuItemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineItemQuantity)
	}
	if quantity > maxLineItemQuantity {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineItemQuantity)
	}

	return LineItem{
		menuItemID:    menuItemID,
		name:          name,
		unitPrice:     unitPrice,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// maxLineItemQuantity caps a single line to keep totals inside NUMERIC(10,2).
const maxLineItemQuantity = 1000

// Validate ensures the LineItem was properly constructed through NewLineItem.
func (li LineItem) Validate() error {
	if !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// MenuItemID returns the identifier of the snapshotted menu entry.
func (li LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Name returns the menu entry name captured at order time.
func (li LineItem) Name() string {
	return li.name
}

// UnitPrice returns the per-unit price captured at order time.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Quantity returns the number of units purchased.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Multiply(li.quantity)
}
