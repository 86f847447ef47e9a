package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/capacity"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/core/domain/model/trip"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmedOrder(t *testing.T, space int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Riverton", "14 Dock Street", space)
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	return o
}

func railTripWithCommitted(t *testing.T, total, committed int) *trip.RailTrip {
	t.Helper()
	departure := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	tr, err := trip.RestoreRailTrip(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		departure, departure.Add(6*time.Hour), total, committed,
	)
	require.NoError(t, err)
	return tr
}

func TestAllocateRailCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := confirmedOrder(t, 5)
	testTrip := railTripWithCommitted(t, 10, 3)

	cmd, err := commands.NewAllocateRailCommand(testOrder.ID(), testTrip.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockRailTripRepository)
	legRepo := new(MockShipmentLegRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RailTripRepository").Return(tripRepo).Once(),
		uow.On("ShipmentLegRepository").Return(legRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		legRepo.On("GetByOrderAndStage", ctx, testOrder.ID(), shipment.Rail).
			Return(nil, errs.ErrObjectNotFound).Once(),
		tripRepo.On("GetForUpdate", ctx, testTrip.ID()).Return(testTrip, nil).Once(),
		tripRepo.On("Update", ctx, mock.AnythingOfType("*trip.RailTrip")).Return(nil).Once(),
		legRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Leg")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAllocateRailCommandHandler(factory)
	leg, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, leg)
	assert.Equal(t, testOrder.ID(), leg.OrderID())
	assert.Equal(t, shipment.Rail, leg.Stage())
	assert.Equal(t, testTrip.ID(), leg.ResourceID())
	assert.Equal(t, 5, leg.Space())

	assert.Equal(t, 8, testTrip.CommittedCapacity())
	assert.Equal(t, order.RailScheduled, testOrder.Status())

	orderRepo.AssertExpectations(t)
	tripRepo.AssertExpectations(t)
	legRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAllocateRailCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AllocateRailCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewAllocateRailCommandHandler(factory)
	leg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAllocateRailCommandIsNotConstructed)
	assert.Nil(t, leg)
	factory.AssertNotCalled(t, "Create")
}

func TestAllocateRailCommandHandler_Handle_OrderNotConfirmed(t *testing.T) {
	ctx := t.Context()

	pendingOrder, err := order.NewOrder(kernel.NewUUID(), "Riverton", "14 Dock Street", 5)
	require.NoError(t, err)

	cmd, err := commands.NewAllocateRailCommand(pendingOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockRailTripRepository)
	legRepo := new(MockShipmentLegRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RailTripRepository").Return(tripRepo).Once(),
		uow.On("ShipmentLegRepository").Return(legRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAllocateRailCommandHandler(factory)
	leg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrOrderNotConfirmed)
	assert.Nil(t, leg)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAllocateRailCommandHandler_Handle_AlreadyAllocated(t *testing.T) {
	ctx := t.Context()

	testOrder := confirmedOrder(t, 5)
	existingLeg, err := shipment.NewLeg(
		kernel.NewUUID(), testOrder.ID(), shipment.Rail, kernel.NewUUID(), 5,
	)
	require.NoError(t, err)

	cmd, err := commands.NewAllocateRailCommand(testOrder.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockRailTripRepository)
	legRepo := new(MockShipmentLegRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RailTripRepository").Return(tripRepo).Once(),
		uow.On("ShipmentLegRepository").Return(legRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		legRepo.On("GetByOrderAndStage", ctx, testOrder.ID(), shipment.Rail).
			Return(existingLeg, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAllocateRailCommandHandler(factory)
	leg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAlreadyAllocated)
	assert.Nil(t, leg)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAllocateRailCommandHandler_Handle_CapacityExceeded(t *testing.T) {
	ctx := t.Context()

	testOrder := confirmedOrder(t, 5)
	testTrip := railTripWithCommitted(t, 10, 8) // only 2 units left

	cmd, err := commands.NewAllocateRailCommand(testOrder.ID(), testTrip.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockRailTripRepository)
	legRepo := new(MockShipmentLegRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RailTripRepository").Return(tripRepo).Once(),
		uow.On("ShipmentLegRepository").Return(legRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		legRepo.On("GetByOrderAndStage", ctx, testOrder.ID(), shipment.Rail).
			Return(nil, errs.ErrObjectNotFound).Once(),
		tripRepo.On("GetForUpdate", ctx, testTrip.ID()).Return(testTrip, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAllocateRailCommandHandler(factory)
	leg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, capacity.ErrCapacityExceeded)
	assert.Nil(t, leg)
	assert.Equal(t, 8, testTrip.CommittedCapacity())
	uow.AssertNotCalled(t, "Commit", ctx)
	tripRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestAllocateRailCommandHandler_Handle_GetOrderError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewAllocateRailCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockRailTripRepository)
	legRepo := new(MockShipmentLegRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RailTripRepository").Return(tripRepo).Once(),
		uow.On("ShipmentLegRepository").Return(legRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, cmd.OrderID()).
			Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAllocateRailCommandHandler(factory)
	leg, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	assert.Nil(t, leg)
}
