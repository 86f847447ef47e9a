package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding through repositories.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

type GetUnallocatedOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUnallocatedOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetUnallocatedOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetUnallocatedOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsAwaitingAllocation() {
	confirmed := suite.seedOrder(order.Confirmed)
	railScheduled := suite.seedOrder(order.RailScheduled)

	// Everything before and after the allocation window stays out.
	suite.seedOrder(order.Pending)
	suite.seedOrder(order.RoadScheduled)
	suite.seedOrder(order.InTransit)
	suite.seedOrder(order.Delivered)
	suite.seedOrder(order.Cancelled)

	query := queries.NewGetUnallocatedOrdersQuery()
	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	resultIDs := make(map[kernel.UUID]order.Status)
	for _, r := range result {
		resultIDs[r.ID] = r.Status
	}
	suite.Equal(order.Confirmed, resultIDs[confirmed.ID()])
	suite.Equal(order.RailScheduled, resultIDs[railScheduled.ID()])
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) TestHandle_MapsOrderFields() {
	seeded := suite.seedOrder(order.Confirmed)

	query := queries.NewGetUnallocatedOrdersQuery()
	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(seeded.ID(), result[0].ID)
	suite.Equal(seeded.DestinationCity(), result[0].DestinationCity)
	suite.Equal(seeded.Street(), result[0].Street)
	suite.Equal(seeded.RequiredSpace(), result[0].RequiredSpace)
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetUnallocatedOrdersQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetUnallocatedOrdersQueryHandlerTestSuite) seedOrder(status order.Status) *order.Order {
	seeded, err := order.RestoreOrder(kernel.NewUUID(), "Harborview", "Dock Street 12", 5, status)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), seeded))
	return seeded
}

func TestGetUnallocatedOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUnallocatedOrdersQueryHandlerTestSuite))
}
