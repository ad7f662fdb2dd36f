package account

import (
	"fmt"

	"swiftserve/internal/pkg/errs"
)

// Role identifies which of the three marketplace parties a caller acts as.
// The session gate authenticates a caller and yields their identity and role
// before any core operation is invoked; the core trusts the pair.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders and tracks them to delivery.
	RoleCustomer

	// RoleRestaurant owns a restaurant and works orders through
	// Preparing and Ready (or rejects them).
	RoleRestaurant

	// RoleAgent claims ready orders and drives them to Delivered.
	RoleAgent
)

// getRoleStrings returns a map of Role values to their string
// representations. These match the role strings carried in session claims.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleRestaurant: "restaurant",
		RoleAgent:      "agent",
	}
}

// ParseRole converts a claim string to a Role. Unknown strings return an
// error so an unrecognized role never passes a gate check.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is valid.
// RoleUnknown (0) and any other values are invalid.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleAgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the claim-string representation of the role.
// Returns "unknown" for invalid role values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
