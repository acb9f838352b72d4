// Package ports defines the contracts between the order lifecycle core and
// its infrastructure: persistence, transactions and message delivery.
package ports

import (
	"context"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted, so there is no Remove.
type OrderRepository interface {
	// Add persists a new order together with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order. Items are immutable
	// and are not written again.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateAll persists the status of every given order with one statement
	// per distinct target status.
	UpdateAll(ctx context.Context, aggregates []*order.Order) error

	// Get retrieves an order with its items in request order.
	// Returns *errs.ObjectNotFoundError when no order has the id.
	// Inside a unit of work the order stays locked until it ends.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves every order currently in status, oldest first,
	// locking them like Get.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
