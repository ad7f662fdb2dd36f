package order

import (
	"errors"
	"fmt"

	"swiftserve/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel error for any rejected status change.
// Use errors.Is to classify; the concrete *InvalidTransitionError carries the
// offending pair of statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a requested status change that is not an
// outgoing edge of the order's current status. This includes self-loops
// (re-requesting the current status) and unknown statuses.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// Error formats the rejected transition.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

// Unwrap returns the sentinel ErrInvalidTransition so errors.Is matches.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Placed ──┬──> Preparing ──> Ready ──> OutForDelivery ──> Delivered
//	         │
//	         └──> Rejected
//
// Transitions are monotonic: there are no backward edges and no self-loops,
// and Delivered and Rejected are terminal. Status is a value object that
// validates state transitions and provides string representations for
// persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status set when a customer checks out.
	// Orders in this status are waiting for the restaurant's decision.
	Placed

	// Preparing indicates the restaurant accepted the order and is
	// preparing the food.
	Preparing

	// Ready indicates the food is ready for pickup. Orders in this status
	// with no agent assigned are claimable by delivery agents.
	Ready

	// OutForDelivery indicates a delivery agent claimed the order and is
	// driving it to the customer. The agent reference is set at this point.
	OutForDelivery

	// Delivered indicates the assigned agent handed the order to the
	// customer. This is a final state with no further transitions.
	Delivered

	// Rejected indicates the restaurant declined the order. This is a
	// final state reachable only from Placed.
	Rejected
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Placed:         "Placed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Rejected:       "Rejected",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:         "Placed",
		Preparing:      "Preparing",
		Ready:          "Ready",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Rejected:       "Rejected",
	}
}

// getTransitions returns the outgoing edges of the lifecycle graph.
// Terminal statuses have no entry.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:         {Preparing, Rejected},
		Preparing:      {Ready},
		Ready:          {OutForDelivery},
		OutForDelivery: {Delivered},
	}
}

// ParseStatus converts a wire string (e.g. "Out for Delivery") to a Status.
// Unknown or unsupported strings return an error rather than being silently
// ignored; callers treat them as invalid transitions.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Placed, Preparing, Ready, OutForDelivery, Delivered,
// Rejected. Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, which is also the
// wire representation used by the notification channel and the HTTP API.
//
// Returns "Unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
// Delivered and Rejected are the terminal statuses.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected
}

// CanTransitionTo reports whether next is an outgoing edge of this status.
// Self-loops are never valid edges; re-requesting the current status fails.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range getTransitions()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a status transition.
//
// Returns:
//   - (next, nil) when next is an outgoing edge of the current status
//   - (Unknown, *InvalidTransitionError) otherwise, including when next is
//     not a valid status at all or equals the current status
//
// This method is used by the Order aggregate to enforce the lifecycle graph.
//
// Example:
//
//	newStatus, err := currentStatus.TransitionTo(order.Preparing)
//	if err != nil {
//	    // Handle invalid transition
//	}
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, NewInvalidTransitionError(s, next)
	}
	if !s.CanTransitionTo(next) {
		return Unknown, NewInvalidTransitionError(s, next)
	}
	return next, nil
}

// ValidateCanHaveAgent validates the consistency between order status and
// agent assignment. An agent reference must be present exactly when the
// order is out for delivery or delivered.
//
// Parameters:
//   - agent: whether the order has a delivery agent assigned
//
// Returns:
//   - error: validation error if status and agent assignment are inconsistent
func (s Status) ValidateCanHaveAgent(agent bool) error {
	assigned := s == OutForDelivery || s == Delivered

	if agent && !assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an agent", s.String()),
		)
	}

	if !agent && assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s.String()),
		)
	}

	return nil
}
