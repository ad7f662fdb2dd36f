package queries_test

import (
	"testing"

	"swiftserve/internal/core/application/usecases/queries"
	"swiftserve/internal/core/domain/model/account"
	"swiftserve/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderDetailsQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actor, err := account.NewActor(kernel.NewUUID(), account.RoleCustomer)
	require.NoError(t, err)

	query, err := queries.NewGetOrderDetailsQuery(orderID, actor)
	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, actor, query.Actor())
}

func TestNewGetOrderDetailsQuery_InvalidOrderID(t *testing.T) {
	actor, err := account.NewActor(kernel.NewUUID(), account.RoleCustomer)
	require.NoError(t, err)

	_, err = queries.NewGetOrderDetailsQuery(kernel.UUID{}, actor)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetOrderDetailsQuery_InvalidActor(t *testing.T) {
	_, err := queries.NewGetOrderDetailsQuery(kernel.NewUUID(), account.Actor{})
	require.Error(t, err)
	assert.ErrorIs(t, err, account.ErrActorIsNotConstructed)
}

func TestGetOrderDetailsQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetOrderDetailsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderDetailsQueryIsNotConstructed)
}
