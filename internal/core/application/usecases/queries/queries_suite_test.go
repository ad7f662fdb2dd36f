package queries_test

import (
	"context"
	"testing"
	"time"

	"swiftserve/internal/adapters/out/postgres/orderrepo"
	"swiftserve/internal/adapters/out/postgres/restaurantrepo"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// startPostgres boots a disposable database with the order schema migrated.
// Shared by every query handler suite in this package.
func startPostgres(t *testing.T) (*postgres.PostgresContainer, *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}, &restaurantrepo.RestaurantDTO{})
	require.NoError(t, err)

	return container, db
}

// mockAggregateTracker satisfies the repository's tracker dependency for
// tests that do not care about tracked aggregates.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

// seedRestaurant persists a restaurant with a fresh owner and returns it.
func seedRestaurant(t *testing.T, db *gorm.DB, name, address string) *restaurant.Restaurant {
	t.Helper()
	rest, err := restaurant.NewRestaurant(kernel.NewUUID(), kernel.NewUUID(), name, address)
	require.NoError(t, err)

	repo := restaurantrepo.NewGormRestaurantRepository(db)
	require.NoError(t, repo.Add(context.Background(), rest))
	return rest
}

// seedOrder builds an order against the given restaurant, advances it to the
// requested status (assigning agentID on the claim edge) and persists it.
func seedOrder(
	t *testing.T,
	db *gorm.DB,
	rest *restaurant.Restaurant,
	customerID kernel.UUID,
	agentID kernel.UUID,
	status order.Status,
) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(1250)
	require.NoError(t, err)
	line, err := order.NewLineItem(kernel.NewUUID(), "Carbonara", price, 2)
	require.NoError(t, err)

	ord, err := order.NewOrder(kernel.NewUUID(), customerID, rest.ID(),
		[]order.LineItem{line}, "Alice", "555-0134", "12 Birch Lane")
	require.NoError(t, err)

	switch status {
	case order.Placed:
	case order.Rejected:
		require.NoError(t, ord.Reject())
	case order.Preparing:
		require.NoError(t, ord.Accept())
	case order.Ready:
		require.NoError(t, ord.Accept())
		require.NoError(t, ord.MarkReady())
	case order.OutForDelivery:
		require.NoError(t, ord.Accept())
		require.NoError(t, ord.MarkReady())
		require.NoError(t, ord.Assign(agentID))
	case order.Delivered:
		require.NoError(t, ord.Accept())
		require.NoError(t, ord.MarkReady())
		require.NoError(t, ord.Assign(agentID))
		require.NoError(t, ord.Complete(agentID))
	default:
		t.Fatalf("unsupported seed status %v", status)
	}

	repo := orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	require.NoError(t, repo.Add(context.Background(), ord))
	return ord
}
