package queries

import (
	"errors"
	"time"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/errs"
	"swiftserve/internal/pkg/guard"
)

var (
	ErrGetAgentOrdersQueryIsNotConstructed = errors.New(
		"GetAgentOrdersQuery must be created via NewGetAgentOrdersQuery constructor",
	)
)

// AgentOrdersScope selects which slice of an agent's orders to return.
type AgentOrdersScope int

const (
	// AgentOrdersActive returns deliveries the agent is currently carrying.
	AgentOrdersActive AgentOrdersScope = iota + 1
	// AgentOrdersHistory returns deliveries the agent has completed.
	AgentOrdersHistory
)

// Validate ensures the scope is one of the defined values.
func (s AgentOrdersScope) Validate() error {
	if s != AgentOrdersActive && s != AgentOrdersHistory {
		return errs.NewValueIsInvalidError("scope")
	}
	return nil
}

// GetAgentOrdersQuery retrieves an agent's deliveries: either the active
// ones (out for delivery) or the completed history.
type GetAgentOrdersQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	scope   AgentOrdersScope

	guard guard.ConstructorGuard
}

// NewGetAgentOrdersQuery creates a query for the given agent's deliveries.
func NewGetAgentOrdersQuery(agentID kernel.UUID, scope AgentOrdersScope) (GetAgentOrdersQuery, error) {
	q := GetAgentOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setAgentID(agentID),
		q.setScope(scope),
	); err != nil {
		return GetAgentOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentOrdersQueryIsNotConstructed if validation fails.
func (q GetAgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentOrdersQueryIsNotConstructed)
}

// AgentID returns the agent whose deliveries are requested.
func (q GetAgentOrdersQuery) AgentID() kernel.UUID {
	return q.agentID
}

// Scope returns the requested slice of the agent's deliveries.
func (q GetAgentOrdersQuery) Scope() AgentOrdersScope {
	return q.scope
}

func (q *GetAgentOrdersQuery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	q.agentID = agentID
	return nil
}

func (q *GetAgentOrdersQuery) setScope(scope AgentOrdersScope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	q.scope = scope
	return nil
}

// GetAgentOrdersQueryResponse represents one delivery in an agent's view.
type GetAgentOrdersQueryResponse struct {
	ID                kernel.UUID
	RestaurantName    string
	RestaurantAddress string
	DeliveryAddress   string
	Status            order.Status
	Total             kernel.Money
	CreatedAt         time.Time
}
