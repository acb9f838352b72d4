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

const pendingOrdersSweeperJobName = "pending_orders_sweeper"

// PendingOrdersAdvancer moves every Pending order to Processing.
type PendingOrdersAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvancePendingOrdersCommand) (int, error)
}

// PendingOrdersSweeperJob periodically promotes Pending orders to Processing.
// The first sweep runs one interval after Start.
type PendingOrdersSweeperJob struct {
	handler  PendingOrdersAdvancer
	interval time.Duration
	metrics  *metrics.Metrics
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPendingOrdersSweeperJob creates the sweeper. m may be nil.
func NewPendingOrdersSweeperJob(
	handler PendingOrdersAdvancer,
	interval time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *PendingOrdersSweeperJob {
	logger = logger.With("component", "pending_orders_sweeper_job")
	ctx, cancel := context.WithCancel(context.Background())

	return &PendingOrdersSweeperJob{
		handler:  handler,
		interval: interval,
		metrics:  m,
		cron:     newCron(logger),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the sweep every interval.
func (j *PendingOrdersSweeperJob) Start() error {
	if j.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", j.interval)
	}

	if _, err := j.cron.AddFunc("@every "+j.interval.String(), func() { j.sweep(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Pending orders sweeper started", "interval", j.interval.String())
	return nil
}

// Stop cancels a running sweep and waits for it to return. A cancelled
// sweep saves nothing.
func (j *PendingOrdersSweeperJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("Pending orders sweeper stopped")
}

func (j *PendingOrdersSweeperJob) sweep(ctx context.Context) {
	advanced, err := j.handler.Handle(ctx, commands.NewAdvancePendingOrdersCommand())
	j.metrics.ObserveJob(pendingOrdersSweeperJobName, advanced, err)

	switch {
	case errors.Is(err, context.Canceled):
		j.logger.InfoContext(ctx, "Pending orders sweep abandoned on shutdown")
	case err != nil:
		j.logger.ErrorContext(ctx, "Pending orders sweep failed", "error", err)
	case advanced > 0:
		j.logger.InfoContext(ctx, "Pending orders advanced to Processing", "count", advanced)
	default:
		j.logger.DebugContext(ctx, "No pending orders to advance")
	}
}
