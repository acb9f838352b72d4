package ports

import (
	"context"
	"time"

	"orderprocessing/internal/core/domain/model/outbox"
)

// OutboxRepository stores integration messages next to the aggregates that
// produced them.
type OutboxRepository interface {
	// Add stores unsent messages.
	Add(ctx context.Context, messages ...*outbox.Message) error

	// GetUnsent locks and returns up to limit unsent messages, oldest first.
	// Rows locked by another transaction are skipped, so concurrent relays
	// never pick the same message.
	GetUnsent(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkSent records the delivery time of the given messages.
	MarkSent(ctx context.Context, sentAt time.Time, messages ...*outbox.Message) error
}
