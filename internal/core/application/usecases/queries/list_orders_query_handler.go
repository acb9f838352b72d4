package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads orders with their items.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler reading from db.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns every order matching the filter, oldest first with ties
// broken by id. Items keep their request order. The result is never nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const orderBy = `ORDER BY o.created_at, o.id, i.position`

	var (
		rows *sql.Rows
		err  error
	)
	if status, ok := query.Status(); ok {
		rows, err = h.db.WithContext(ctx).Raw(selectOrderViews+`WHERE o.status = ? `+orderBy, int(status)).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(selectOrderViews + orderBy).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderViews(rows)
}
