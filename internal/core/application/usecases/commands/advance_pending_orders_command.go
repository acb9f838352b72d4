package commands

import (
	"errors"

	"orderprocessing/internal/pkg/guard"
)

var (
	ErrAdvancePendingOrdersCommandIsNotConstructed = errors.New(
		"AdvancePendingOrdersCommand must be created via NewAdvancePendingOrdersCommand constructor",
	)
)

// AdvancePendingOrdersCommand moves every Pending order to Processing.
// It is issued by the background sweeper on each tick.
type AdvancePendingOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewAdvancePendingOrdersCommand() AdvancePendingOrdersCommand {
	return AdvancePendingOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c AdvancePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePendingOrdersCommandIsNotConstructed)
}
