package commands

import (
	"context"
)

// ConfirmOrderCommandHandler moves orders from Pending to Confirmed.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order under a lock, applies the Confirm transition, and
// persists the result.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, command ConfirmOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	confirmingOrder, err := orders.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = confirmingOrder.Confirm(); err != nil {
		return err
	}

	if err = orders.Update(ctx, confirmingOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
