package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderprocessing/internal/core/application/usecases/commands"
	"orderprocessing/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const outboxRelayJobName = "outbox_relay"

// OutboxPublisher publishes one batch of unsent outbox messages.
type OutboxPublisher interface {
	Handle(ctx context.Context, cmd commands.PublishOutboxMessagesCommand) (int, error)
}

// OutboxRelayJob periodically drains the outbox to the message broker.
type OutboxRelayJob struct {
	handler  OutboxPublisher
	cmd      commands.PublishOutboxMessagesCommand
	interval time.Duration
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOutboxRelayJob creates the relay publishing up to batchSize messages
// per transaction. m may be nil.
func NewOutboxRelayJob(
	handler OutboxPublisher,
	interval time.Duration,
	batchSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	cmd, err := commands.NewPublishOutboxMessagesCommand(batchSize)
	if err != nil {
		return nil, err
	}

	logger = logger.With("component", "outbox_relay_job")
	ctx, cancel := context.WithCancel(context.Background())

	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		interval: interval,
		metrics:  m,
		cron:     newCron(logger),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start schedules the relay every interval.
func (j *OutboxRelayJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("relay interval must be positive, got %s", j.interval)
	}

	if _, err := j.cron.AddFunc("@every "+j.interval.String(), func() { j.relay(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Outbox relay started", "interval", j.interval.String())
	return nil
}

// Stop cancels a running relay and waits for it to return.
func (j *OutboxRelayJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay stopped")
}

// relay publishes full batches until the outbox has fewer unsent messages
// than one batch, the context is cancelled or a batch fails.
func (j *OutboxRelayJob) relay(ctx context.Context) {
	total := 0
	for {
		published, err := j.handler.Handle(ctx, j.cmd)
		total += published

		if err != nil {
			j.metrics.ObserveJob(outboxRelayJobName, total, err)
			if errors.Is(err, context.Canceled) {
				j.logger.InfoContext(ctx, "Outbox relay abandoned on shutdown")
			} else {
				j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "published", total)
			}
			return
		}

		if published < j.cmd.BatchSize() || ctx.Err() != nil {
			break
		}
	}

	j.metrics.ObserveJob(outboxRelayJobName, total, nil)
	if total > 0 {
		j.logger.InfoContext(ctx, "Outbox messages published", "count", total)
	}
}
