package legrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/legrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ShipmentLegRepositoryIntegrationTestSuite provides integration tests for
// ShipmentLegRepository, including the one-leg-per-stage constraint.
type ShipmentLegRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *legrepo.GormShipmentLegRepository
	tracker    *MockAggregateTracker
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&legrepo.ShipmentLegDTO{}))
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipment_legs").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = legrepo.NewGormShipmentLegRepository(suite.db, suite.tracker)
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrips() {
	ctx := context.Background()

	leg := suite.createTestLeg(kernel.NewUUID(), shipment.Rail)
	suite.Require().NoError(suite.repository.Add(ctx, leg))

	restored, err := suite.repository.Get(ctx, leg.ID())
	suite.Require().NoError(err)

	suite.Equal(leg.ID(), restored.ID())
	suite.Equal(leg.OrderID(), restored.OrderID())
	suite.Equal(shipment.Rail, restored.Stage())
	suite.Equal(leg.ResourceID(), restored.ResourceID())
	suite.Equal(leg.Space(), restored.Space())
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestAdd_DuplicateStage_Fails() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	first := suite.createTestLeg(orderID, shipment.Rail)
	second := suite.createTestLeg(orderID, shipment.Rail)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().Error(suite.repository.Add(ctx, second))
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestAdd_DifferentStages_Allowed() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestLeg(orderID, shipment.Rail)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestLeg(orderID, shipment.Road)))
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestGetByOrderAndStage() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	railLeg := suite.createTestLeg(orderID, shipment.Rail)
	roadLeg := suite.createTestLeg(orderID, shipment.Road)
	suite.Require().NoError(suite.repository.Add(ctx, railLeg))
	suite.Require().NoError(suite.repository.Add(ctx, roadLeg))

	found, err := suite.repository.GetByOrderAndStage(ctx, orderID, shipment.Road)
	suite.Require().NoError(err)
	suite.Equal(roadLeg.ID(), found.ID())

	_, err = suite.repository.GetByOrderAndStage(ctx, kernel.NewUUID(), shipment.Rail)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestGetAllByOrder() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestLeg(orderID, shipment.Rail)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestLeg(orderID, shipment.Road)))
	suite.Require().NoError(
		suite.repository.Add(ctx, suite.createTestLeg(kernel.NewUUID(), shipment.Rail)),
	)

	legs, err := suite.repository.GetAllByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Len(legs, 2)
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestGetAllByOrder_NoLegs_ReturnsEmpty() {
	legs, err := suite.repository.GetAllByOrder(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(legs)
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestDelete_RemovesLeg() {
	ctx := context.Background()

	leg := suite.createTestLeg(kernel.NewUUID(), shipment.Rail)
	suite.Require().NoError(suite.repository.Add(ctx, leg))

	suite.Require().NoError(suite.repository.Delete(ctx, leg.ID()))

	_, err := suite.repository.Get(ctx, leg.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentLegRepositoryIntegrationTestSuite) TestDelete_MissingLeg_NotFound() {
	err := suite.repository.Delete(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// createTestLeg creates a leg for the given order and stage.
func (suite *ShipmentLegRepositoryIntegrationTestSuite) createTestLeg(
	orderID kernel.UUID, stage shipment.Stage,
) *shipment.Leg {
	leg, err := shipment.NewLeg(kernel.NewUUID(), orderID, stage, kernel.NewUUID(), 4)
	suite.Require().NoError(err)
	return leg
}

func TestShipmentLegRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentLegRepositoryIntegrationTestSuite))
}
