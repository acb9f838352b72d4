package commands_test

import (
	"context"
	"errors"
	"testing"

	"orderprocessing/internal/core/application/usecases/commands"
	"orderprocessing/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvancePendingOrdersCommandHandler_Handle_AdvancesEveryPendingOrder(t *testing.T) {
	ctx := t.Context()
	pending := []*order.Order{orderIn(t, order.Pending), orderIn(t, order.Pending)}

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllInStatus", ctx, order.Pending).Return(pending, nil).Once(),
		repo.On("UpdateAll", ctx, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvancePendingOrdersCommandHandler(factory)
	advanced, err := h.Handle(ctx, commands.NewAdvancePendingOrdersCommand())

	require.NoError(t, err)
	assert.Equal(t, 2, advanced)
	for _, o := range pending {
		assert.Equal(t, order.Processing, o.Status())
	}
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvancePendingOrdersCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Pending).Return([]*order.Order{}, nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvancePendingOrdersCommandHandler(factory)
	advanced, err := h.Handle(ctx, commands.NewAdvancePendingOrdersCommand())

	require.NoError(t, err)
	assert.Zero(t, advanced)
	repo.AssertNotCalled(t, "UpdateAll", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdvancePendingOrdersCommandHandler_Handle_CancelledBeforeCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	pending := []*order.Order{orderIn(t, order.Pending)}

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Pending).Return(pending, nil).Once()
	repo.On("UpdateAll", ctx, pending).Run(func(mock.Arguments) { cancel() }).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvancePendingOrdersCommandHandler(factory)
	advanced, err := h.Handle(ctx, commands.NewAdvancePendingOrdersCommand())

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, advanced)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertCalled(t, "Rollback", ctx)
}

func TestAdvancePendingOrdersCommandHandler_Handle_UpdateFailure(t *testing.T) {
	ctx := t.Context()
	pending := []*order.Order{orderIn(t, order.Pending)}

	repo := new(MockOrderRepository)
	repo.On("GetAllInStatus", ctx, order.Pending).Return(pending, nil).Once()
	repo.On("UpdateAll", ctx, pending).Return(errors.New("deadlock detected")).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvancePendingOrdersCommandHandler(factory)
	advanced, err := h.Handle(ctx, commands.NewAdvancePendingOrdersCommand())

	require.EqualError(t, err, "deadlock detected")
	assert.Zero(t, advanced)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdvancePendingOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewAdvancePendingOrdersCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.AdvancePendingOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrAdvancePendingOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
