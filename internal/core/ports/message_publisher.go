package ports

import (
	"context"

	"orderprocessing/internal/core/domain/model/outbox"
)

// MessagePublisher delivers outbox messages to the message broker.
// Publish returns only after every message is acknowledged, or an error.
type MessagePublisher interface {
	Publish(ctx context.Context, messages ...*outbox.Message) error
}
