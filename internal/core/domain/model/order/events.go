package order

import (
	"time"

	"orderprocessing/internal/core/domain/model/kernel"
)

// StatusChangedEvent is recorded by an Order every time its status moves,
// whether through ChangeStatus or Cancel.
type StatusChangedEvent struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

// EventName is the stable name used by consumers of published events.
func (StatusChangedEvent) EventName() string {
	return "order.status_changed"
}
