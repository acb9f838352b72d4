// Package queries contains read-only operations over orders.
// Handlers read straight from the database with SQL and build flat views;
// they never load aggregates or open transactions.
package queries

import (
	"database/sql"
	"time"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read projection of an order.
type OrderView struct {
	ID        kernel.UUID
	CreatedAt time.Time
	Status    order.Status
	Items     []OrderItemView
}

// OrderItemView is the read projection of one order line.
type OrderItemView struct {
	ID          kernel.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

const selectOrderViews = `
	SELECT
		o.id,
		o.created_at,
		o.status,
		i.id,
		i.product_name,
		i.quantity,
		i.price
	FROM orders o
	JOIN order_items i ON i.order_id = o.id
`

// scanOrderViews folds joined order/item rows into views. Rows must arrive
// grouped by order and ordered by item position within each order.
func scanOrderViews(rows *sql.Rows) ([]OrderView, error) {
	views := make([]OrderView, 0)

	for rows.Next() {
		var (
			orderID, itemID uuid.UUID
			createdAt       time.Time
			status          int
			item            OrderItemView
		)

		if err := rows.Scan(
			&orderID,
			&createdAt,
			&status,
			&itemID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
		); err != nil {
			return nil, err
		}

		var err error
		if item.ID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}

		last := len(views) - 1
		if last >= 0 && views[last].ID.Bytes() == orderID {
			views[last].Items = append(views[last].Items, item)
			continue
		}

		id, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}

		orderStatus := order.Status(status)
		if err = orderStatus.Validate(); err != nil {
			return nil, err
		}

		views = append(views, OrderView{
			ID:        id,
			CreatedAt: createdAt.UTC(),
			Status:    orderStatus,
			Items:     []OrderItemView{item},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
