package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its items.
//
// Example:
//
//	view, found, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if !found {
//	    // respond 404
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler reading from db.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order view and true, or a zero view and false when no
// order has the id. A missing order is not an error.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, bool, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, false, err
	}

	rows, err := h.db.WithContext(ctx).Raw(selectOrderViews+`
		WHERE o.id = ?
		ORDER BY i.position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderView{}, false, err
	}
	defer rows.Close()

	views, err := scanOrderViews(rows)
	if err != nil {
		return OrderView{}, false, err
	}

	if len(views) == 0 {
		return OrderView{}, false, nil
	}

	return views[0], true, nil
}
