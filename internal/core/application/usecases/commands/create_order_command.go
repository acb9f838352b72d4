package commands

import (
	"errors"

	"orderprocessing/internal/core/domain/model/order"
	"orderprocessing/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a new order.
// The lines are checked against the order rules by the handler, so an empty
// or oversized list still produces a command.
//
// Example:
//
//	cmd := NewCreateOrderCommand([]order.Line{
//	    {ProductName: "Laptop", Quantity: 1, Price: decimal.NewFromInt(50000)},
//	})
//	id, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // report the reason to the client
//	}
type CreateOrderCommand struct {
	lines []order.Line

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand copies lines into a new command.
func NewCreateOrderCommand(lines []order.Line) CreateOrderCommand {
	copied := make([]order.Line, len(lines))
	copy(copied, lines)

	return CreateOrderCommand{
		lines: copied,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Lines returns the requested product lines in request order.
func (c CreateOrderCommand) Lines() []order.Line {
	lines := make([]order.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}
