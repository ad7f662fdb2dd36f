// Package restaurant provides the restaurant aggregate referenced by orders.
// The core only needs a restaurant's ownership (to authorize workflow
// actions) and its public details (name, address) for agent-facing listings;
// menu management lives outside the core.
package restaurant

import (
	"errors"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
// not created through the NewRestaurant factory function.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant represents a restaurant registered on the marketplace.
// Each restaurant has exactly one owner; an owner operates one restaurant.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string
	address string

	isConstructed bool
}

// NewRestaurant creates a validated Restaurant.
func NewRestaurant(id, ownerID kernel.UUID, name, address string) (*Restaurant, error) {
	r := &Restaurant{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setName(name),
		r.setAddress(address),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Restaurant was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// OwnerID returns the identifier of the owning account.
func (r *Restaurant) OwnerID() kernel.UUID {
	return r.ownerID
}

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string {
	return r.name
}

// Address returns the restaurant's street address.
func (r *Restaurant) Address() string {
	return r.address
}

// IsOwnedBy reports whether the given account owns this restaurant.
func (r *Restaurant) IsOwnedBy(accountID kernel.UUID) bool {
	return r.ownerID.IsEqual(accountID)
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.ownerID = id
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Restaurant) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	r.address = address
	return nil
}
