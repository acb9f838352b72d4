package order

import (
	"errors"
	"fmt"
	"time"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/pkg/errs"
)

// Order is the aggregate root of the order lifecycle. It owns its items and
// decides which status changes are legal.
//
// Order follows these invariants:
//   - It has a valid identifier and a UTC creation time that never changes
//   - It has at least one item; items are fixed at creation
//   - Status only moves forward one step at a time, or from Pending to Cancelled
//   - Every status change is recorded as a StatusChangedEvent
//   - It can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// createdAt is the moment the order was accepted, in UTC
	createdAt time.Time

	// status represents the current state in the order lifecycle
	status Status

	// items keeps the product lines in request order
	items []Item

	// domainEvents collects status changes not yet handed to the outbox
	domainEvents []StatusChangedEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder checks lines against rules and creates a Pending order with a
// fresh identifier, one item per line and the current UTC time.
//
// Returns:
//   - *Order: the created order if every rule passes
//   - error: the first rule violation as an *InvalidOrderError
//
// Example:
//
//	rules, _ := order.NewRules(100, 10)
//	o, err := order.NewOrder(rules, []order.Line{
//	    {ProductName: "Laptop", Quantity: 1, Price: decimal.NewFromInt(50000)},
//	})
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // reject the request
//	}
func NewOrder(rules Rules, lines []Line) (*Order, error) {
	if err := rules.Check(lines); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, newItem(line))
	}

	return &Order{
		id:            kernel.NewUUID(),
		createdAt:     time.Now().UTC(),
		status:        Pending,
		items:         items,
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order loaded from storage. No events are recorded.
func RestoreOrder(id kernel.UUID, createdAt time.Time, status Status, items []Item) (*Order, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}

	var createdAtErr error
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(id.Validate(), createdAtErr, status.Validate(), itemsErr); err != nil {
		return nil, err
	}

	restored := make([]Item, len(items))
	copy(restored, items)

	return &Order{
		id:            id,
		createdAt:     createdAt.UTC(),
		status:        status,
		items:         restored,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order lines in request order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// ChangeStatus moves the order one step along the fulfillment path.
//
// Returns an error wrapping ErrTransitionRejected when the pair is not
// allowed, including same-state, backward and skip-ahead moves and any move
// out of Delivered or Cancelled. The status is left unchanged in that case.
func (o *Order) ChangeStatus(next Status) error {
	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionRejected, o.status, next)
	}

	o.moveTo(next)
	return nil
}

// Cancel moves a Pending order to Cancelled. Any other status returns an
// error wrapping ErrTransitionRejected.
func (o *Order) Cancel() error {
	if !o.status.CanBeCancelled() {
		return fmt.Errorf("%w: %s order cannot be cancelled", ErrTransitionRejected, o.status)
	}

	o.moveTo(Cancelled)
	return nil
}

// DomainEvents returns the status changes recorded since the last clear.
func (o *Order) DomainEvents() []StatusChangedEvent {
	events := make([]StatusChangedEvent, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

// ClearDomainEvents drops recorded events once they have been persisted.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) moveTo(next Status) {
	o.domainEvents = append(o.domainEvents, StatusChangedEvent{
		ID:         kernel.NewUUID(),
		OrderID:    o.id,
		From:       o.status,
		To:         next,
		OccurredAt: time.Now().UTC(),
	})
	o.status = next
}
