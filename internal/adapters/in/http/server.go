package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"orderprocessing/internal/core/application/usecases/commands"
	"orderprocessing/internal/core/application/usecases/queries"
	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.UUID, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (bool, error)
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (bool, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, bool, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

var _ ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	changeOrderStatusHandler ChangeOrderStatusHandler
	cancelOrderHandler       CancelOrderHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	listOrdersHandler ListOrdersHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	changeOrderStatusHandler ChangeOrderStatusHandler,
	cancelOrderHandler CancelOrderHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		cancelOrderHandler:       cancelOrderHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// CreateOrder handles POST /api/orders - creates a new order and returns its id.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return newInvalidPayloadError(err)
	}

	cmd := commands.NewCreateOrderCommand(request.lines())

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var invalid *order.InvalidOrderError
		if errors.As(err, &invalid) {
			return newProblem(http.StatusBadRequest, "Invalid order", invalid.Reason)
		}
		return err
	}

	return ctx.JSON(http.StatusOK, orderID.String())
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		// the nil UUID is well-formed but never assigned to an order
		return orderNotFound(id)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return newInvalidParameterError("id", err)
	}

	view, found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	if !found {
		return orderNotFound(id)
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// ListOrders handles GET /api/orders - lists orders, optionally by status.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var status string
	if params.Status != nil {
		status = *params.Status
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(status))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrderList(views))
}

// UpdateOrderStatus handles PUT /api/orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return newInvalidPayloadError(err)
	}

	status, ok := order.ParseStatus(request.Status)
	if !ok {
		return newInvalidPayloadError(fmt.Errorf("unknown status %q", request.Status))
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return statusUpdateRejected()
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return newInvalidPayloadError(err)
	}

	applied, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	if !applied {
		return statusUpdateRejected()
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles DELETE /api/orders/{id} - cancels a pending order.
func (s *Server) CancelOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return cancellationRefused()
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return newInvalidParameterError("id", err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	if !cancelled {
		return cancellationRefused()
	}

	return ctx.NoContent(http.StatusOK)
}

func orderNotFound(id openapi_types.UUID) *Problem {
	return newProblem(
		http.StatusNotFound,
		"Order not found",
		fmt.Sprintf("Order with ID '%s' does not exist.", id),
	)
}

func statusUpdateRejected() *Problem {
	return newProblem(
		http.StatusBadRequest,
		"Invalid status update",
		"The requested status transition is not allowed.",
	)
}

func cancellationRefused() *Problem {
	return newProblem(
		http.StatusBadRequest,
		"Order cannot be cancelled",
		"Only orders in PENDING status can be cancelled.",
	)
}
