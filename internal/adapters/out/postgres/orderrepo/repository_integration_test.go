package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"swiftserve/internal/adapters/out/postgres/orderrepo"
	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/domain/model/order"
	"swiftserve/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers, with particular attention
// to the conditional UPDATE paths that arbitrate concurrent transitions.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddThenGet_RoundTripsLines() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.True(testOrder.CustomerID().IsEqual(retrieved.CustomerID()))
	suite.True(testOrder.RestaurantID().IsEqual(retrieved.RestaurantID()))
	suite.Equal(order.Placed, retrieved.Status())
	suite.Nil(retrieved.Agent())
	suite.Equal(testOrder.Total().Cents(), retrieved.Total().Cents())
	suite.Equal("Alice", retrieved.DeliveryName())
	suite.Equal("12 Birch Lane", retrieved.DeliveryAddress())

	suite.Require().Len(retrieved.Lines(), 2)
	names := []string{retrieved.Lines()[0].Name(), retrieved.Lines()[1].Name()}
	suite.ElementsMatch([]string{"Margherita", "Tiramisu"}, names)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ExpectedMatches_Persists() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Accept())
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Placed))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, retrieved.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpected_InvalidTransition() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First writer wins.
	suite.Require().NoError(testOrder.Accept())
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Placed))

	// A stale writer still believes the order is Placed.
	stale := suite.restoreAt(testOrder, order.Rejected, nil)
	err := suite.repository.UpdateStatus(ctx, stale, order.Placed)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)

	var transitionErr *order.InvalidTransitionError
	suite.Require().ErrorAs(err, &transitionErr)
	suite.Equal(order.Placed, transitionErr.From)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_MissingOrder_NotFound() {
	ctx := context.Background()

	phantom := suite.createTestOrder()
	suite.Require().NoError(phantom.Accept())

	err := suite.repository.UpdateStatus(ctx, phantom, order.Placed)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ReadyUnassigned_AssignsAgent() {
	ctx := context.Background()

	ready := suite.seedOrderAt(ctx, order.Ready, nil)
	agentID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", ready.ID(), mock.Anything).Once()

	claimed, err := suite.repository.Claim(ctx, ready.ID(), agentID)
	suite.Require().NoError(err)

	suite.Equal(order.OutForDelivery, claimed.Status())
	suite.Require().NotNil(claimed.Agent())
	suite.True(agentID.IsEqual(*claimed.Agent()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_SecondAgent_LosesWithAlreadyClaimed() {
	ctx := context.Background()

	ready := suite.seedOrderAt(ctx, order.Ready, nil)
	suite.tracker.On("TrackAggregate", ready.ID(), mock.Anything).Once()

	winner := kernel.NewUUID()
	_, err := suite.repository.Claim(ctx, ready.ID(), winner)
	suite.Require().NoError(err)

	loser := kernel.NewUUID()
	claimed, err := suite.repository.Claim(ctx, ready.ID(), loser)

	suite.Nil(claimed)
	suite.Require().ErrorIs(err, order.ErrAlreadyClaimed)

	// The winner's assignment survives.
	retrieved, err := suite.repository.Get(ctx, ready.ID())
	suite.Require().NoError(err)
	suite.True(winner.IsEqual(*retrieved.Agent()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConcurrentAgents_ExactlyOneWins() {
	ctx := context.Background()

	ready := suite.seedOrderAt(ctx, order.Ready, nil)
	suite.tracker.On("TrackAggregate", ready.ID(), mock.Anything).Once()

	const contenders = 8

	type claimResult struct {
		agentID kernel.UUID
		err     error
	}

	start := make(chan struct{})
	results := make(chan claimResult, contenders)
	var wg sync.WaitGroup

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agentID := kernel.NewUUID()
			<-start
			_, err := suite.repository.Claim(ctx, ready.ID(), agentID)
			results <- claimResult{agentID: agentID, err: err}
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	var winner *kernel.UUID
	losses := 0
	for result := range results {
		if result.err == nil {
			suite.Require().Nil(winner, "more than one claim succeeded")
			agentID := result.agentID
			winner = &agentID
			continue
		}
		suite.Require().ErrorIs(result.err, order.ErrAlreadyClaimed)
		losses++
	}

	suite.Require().NotNil(winner, "no claim succeeded")
	suite.Equal(contenders-1, losses)

	retrieved, err := suite.repository.Get(ctx, ready.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OutForDelivery, retrieved.Status())
	suite.Require().NotNil(retrieved.Agent())
	suite.True(winner.IsEqual(*retrieved.Agent()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_NotReady_AlreadyClaimed() {
	ctx := context.Background()

	placed := suite.seedOrderAt(ctx, order.Placed, nil)

	claimed, err := suite.repository.Claim(ctx, placed.ID(), kernel.NewUUID())

	suite.Nil(claimed)
	suite.Require().ErrorIs(err, order.ErrAlreadyClaimed)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_MissingOrder_NotFound() {
	ctx := context.Background()

	claimed, err := suite.repository.Claim(ctx, kernel.NewUUID(), kernel.NewUUID())

	suite.Nil(claimed)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReadyUnassigned_ReturnsOldestFirst() {
	ctx := context.Background()

	first := suite.seedOrderAt(ctx, order.Ready, nil)
	time.Sleep(10 * time.Millisecond)
	second := suite.seedOrderAt(ctx, order.Ready, nil)

	agentID := kernel.NewUUID()
	suite.seedOrderAt(ctx, order.Placed, nil)
	suite.seedOrderAt(ctx, order.OutForDelivery, &agentID)

	available, err := suite.repository.GetAllReadyUnassigned(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(available, 2)
	suite.True(first.ID().IsEqual(available[0].ID()))
	suite.True(second.ID().IsEqual(available[1].ID()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllReadyUnassigned_Empty() {
	ctx := context.Background()

	available, err := suite.repository.GetAllReadyUnassigned(ctx)
	suite.Require().NoError(err)
	suite.Empty(available)
}

// createTestOrder builds a freshly placed two-line order.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	pizza, err := kernel.NewMoney(1099)
	suite.Require().NoError(err)
	dessert, err := kernel.NewMoney(650)
	suite.Require().NoError(err)

	line1, err := order.NewLineItem(kernel.NewUUID(), "Margherita", pizza, 2)
	suite.Require().NoError(err)
	line2, err := order.NewLineItem(kernel.NewUUID(), "Tiramisu", dessert, 1)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{line1, line2},
		"Alice", "555-0134", "12 Birch Lane",
	)
	suite.Require().NoError(err)
	return testOrder
}

// restoreAt rebuilds the same order snapshot at a different status.
func (suite *OrderRepositoryIntegrationTestSuite) restoreAt(
	base *order.Order, status order.Status, agentID *kernel.UUID,
) *order.Order {
	restored, err := order.RestoreOrder(
		base.ID(), base.CustomerID(), base.RestaurantID(), agentID,
		base.Lines(), base.Total(),
		base.DeliveryName(), base.DeliveryPhone(), base.DeliveryAddress(),
		status, base.CreatedAt(),
	)
	suite.Require().NoError(err)
	return restored
}

// seedOrderAt persists a fresh order directly at the given status.
func (suite *OrderRepositoryIntegrationTestSuite) seedOrderAt(
	ctx context.Context, status order.Status, agentID *kernel.UUID,
) *order.Order {
	seeded := suite.restoreAt(suite.createTestOrder(), status, agentID)
	suite.tracker.On("TrackAggregate", seeded.ID(), seeded).Once()
	suite.Require().NoError(suite.repository.Add(ctx, seeded))
	return seeded
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
