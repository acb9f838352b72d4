package commands

import (
	"context"

	"orderprocessing/internal/core/domain/model/order"
)

// AdvancePendingOrdersCommandHandler promotes all Pending orders in one batch.
//
// Every Pending order is advanced regardless of its age.
type AdvancePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvancePendingOrdersCommandHandler creates the sweeper's handler.
func NewAdvancePendingOrdersCommandHandler(uowFactory OrderUoWFactory) AdvancePendingOrdersCommandHandler {
	return AdvancePendingOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads every Pending order, moves each to Processing and stores the
// whole batch with one bulk update inside a single transaction.
//
// The context is checked again right before commit: a cancelled context
// rolls the batch back and nothing is saved. Returns the number of orders
// advanced; zero Pending orders is a no-op.
func (h *AdvancePendingOrdersCommandHandler) Handle(ctx context.Context, cmd AdvancePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pending, err := orderRepo.GetAllInStatus(ctx, order.Pending)
	if err != nil {
		return 0, err
	}

	if len(pending) == 0 {
		return 0, nil
	}

	for _, o := range pending {
		if err = o.ChangeStatus(order.Processing); err != nil {
			return 0, err
		}
	}

	if err = orderRepo.UpdateAll(ctx, pending); err != nil {
		return 0, err
	}

	if err = ctx.Err(); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(pending), nil
}
