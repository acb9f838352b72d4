package commands

import (
	"context"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/order"
)

// CreateOrderCommandHandler validates and stores new orders.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, rules)
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// the order is stored with status Pending
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	rules      order.Rules
}

// NewCreateOrderCommandHandler creates a handler applying rules to every request.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, rules order.Rules) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		rules:      rules,
	}
}

// Handle checks the lines and, when every rule passes, inserts the order and
// its items in one transaction and returns the new order id.
//
// A rule violation is returned as an *order.InvalidOrderError matching
// order.ErrInvalidOrder; no transaction is opened in that case.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	newOrder, err := order.NewOrder(h.rules, cmd.Lines())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}
