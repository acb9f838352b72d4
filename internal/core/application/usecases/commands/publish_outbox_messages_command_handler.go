package commands

import (
	"context"
	"time"

	"orderprocessing/internal/core/ports"
)

// PublishOutboxMessagesCommandHandler moves stored events to the broker.
//
// Delivery is at-least-once: when the broker acknowledges a batch but the
// commit marking it sent fails, the batch is published again on the next run.
type PublishOutboxMessagesCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
}

// NewPublishOutboxMessagesCommandHandler creates the relay handler.
func NewPublishOutboxMessagesCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
) PublishOutboxMessagesCommandHandler {
	return PublishOutboxMessagesCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle locks a batch of unsent messages, publishes them and marks them
// sent in the same transaction. A publish failure rolls back, releasing the
// rows for the next run. Returns the number of messages delivered.
func (h *PublishOutboxMessagesCommandHandler) Handle(ctx context.Context, cmd PublishOutboxMessagesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	messages, err := outboxRepo.GetUnsent(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	sentAt := time.Now().UTC()
	for _, m := range messages {
		m.MarkSent(sentAt)
	}

	if err = outboxRepo.MarkSent(ctx, sentAt, messages...); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(messages), nil
}
