package http

import (
	"encoding/json"
	"time"

	"orderprocessing/internal/core/application/usecases/queries"
	"orderprocessing/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderItem is one line of a create request. Price accepts a JSON
// number or a numeric string.
type CreateOrderItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

func (r CreateOrderRequest) lines() []order.Line {
	lines := make([]order.Line, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, order.Line{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return lines
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderItem struct {
	ID          string      `json:"id"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
}

type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Status    string      `json:"status"`
	Items     []OrderItem `json:"items"`
}

// OrderList is the body of the list endpoint. Message is only set when
// nothing matched.
type OrderList struct {
	Message string  `json:"message,omitempty"`
	Data    []Order `json:"data"`
}

func toOrder(view queries.OrderView) Order {
	items := make([]OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, OrderItem{
			ID:          item.ID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       json.Number(item.Price.String()),
		})
	}

	return Order{
		ID:        view.ID.String(),
		CreatedAt: view.CreatedAt,
		Status:    view.Status.String(),
		Items:     items,
	}
}

func toOrderList(views []queries.OrderView) OrderList {
	data := make([]Order, 0, len(views))
	for _, view := range views {
		data = append(data, toOrder(view))
	}

	list := OrderList{Data: data}
	if len(data) == 0 {
		list.Message = "No orders found for the given criteria."
	}
	return list
}
