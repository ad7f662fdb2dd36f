package queries_test

import (
	"testing"

	"swiftserve/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAvailableOrdersQuery_ValidConstruction(t *testing.T) {
	query := queries.NewGetAvailableOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetAvailableOrdersQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetAvailableOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAvailableOrdersQueryIsNotConstructed)
}
