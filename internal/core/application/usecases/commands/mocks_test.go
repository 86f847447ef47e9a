package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/roadrun"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/trip"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared repository and unit-of-work mocks for the command handler tests.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRailTripRepository struct{ mock.Mock }

func (m *MockRailTripRepository) Add(ctx context.Context, t *trip.RailTrip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRailTripRepository) Update(ctx context.Context, t *trip.RailTrip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRailTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.RailTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.RailTrip), args.Error(1)
}

func (m *MockRailTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.RailTrip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.RailTrip), args.Error(1)
}

type MockRoadRunRepository struct{ mock.Mock }

func (m *MockRoadRunRepository) Add(ctx context.Context, r *roadrun.RoadRun) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoadRunRepository) Update(ctx context.Context, r *roadrun.RoadRun) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoadRunRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoadRunRepository) Get(ctx context.Context, id kernel.UUID) (*roadrun.RoadRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*roadrun.RoadRun), args.Error(1)
}

func (m *MockRoadRunRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*roadrun.RoadRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*roadrun.RoadRun), args.Error(1)
}

func (m *MockRoadRunRepository) GetBusyWindows(
	ctx context.Context, class roadrun.EntityClass, entityID, excludeRunID kernel.UUID,
) ([]kernel.TimeWindow, error) {
	args := m.Called(ctx, class, entityID, excludeRunID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.TimeWindow), args.Error(1)
}

type MockShipmentLegRepository struct{ mock.Mock }

func (m *MockShipmentLegRepository) Add(ctx context.Context, leg *shipment.Leg) error {
	args := m.Called(ctx, leg)
	return args.Error(0)
}

func (m *MockShipmentLegRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentLegRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Leg, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Leg), args.Error(1)
}

func (m *MockShipmentLegRepository) GetByOrderAndStage(
	ctx context.Context, orderID kernel.UUID, stage shipment.Stage,
) (*shipment.Leg, error) {
	args := m.Called(ctx, orderID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Leg), args.Error(1)
}

func (m *MockShipmentLegRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*shipment.Leg, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Leg), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RailTripRepository() ports.RailTripRepository {
	args := m.Called()
	return args.Get(0).(ports.RailTripRepository)
}

func (m *MockUoW) RoadRunRepository() ports.RoadRunRepository {
	args := m.Called()
	return args.Get(0).(ports.RoadRunRepository)
}

func (m *MockUoW) ShipmentLegRepository() ports.ShipmentLegRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentLegRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	args := m.Called()
	return args.Get(0).(commands.TripUoW)
}

type MockRunUoWFactory struct{ mock.Mock }

func (m *MockRunUoWFactory) Create() commands.RunUoW {
	args := m.Called()
	return args.Get(0).(commands.RunUoW)
}
