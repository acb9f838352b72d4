package commands

import (
	"errors"

	"orderprocessing/internal/pkg/errs"
	"orderprocessing/internal/pkg/guard"
)

var (
	ErrPublishOutboxMessagesCommandIsNotConstructed = errors.New(
		"PublishOutboxMessagesCommand must be created via NewPublishOutboxMessagesCommand constructor",
	)
)

// PublishOutboxMessagesCommand relays up to BatchSize unsent outbox messages.
type PublishOutboxMessagesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewPublishOutboxMessagesCommand requires a positive batch size.
func NewPublishOutboxMessagesCommand(batchSize int) (PublishOutboxMessagesCommand, error) {
	if batchSize < 1 {
		return PublishOutboxMessagesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return PublishOutboxMessagesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishOutboxMessagesCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxMessagesCommandIsNotConstructed)
}

func (c PublishOutboxMessagesCommand) BatchSize() int {
	return c.batchSize
}
