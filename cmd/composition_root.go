package cmd

import (
	"log/slog"
	"time"

	httpadapter "orderprocessing/internal/adapters/in/http"
	"orderprocessing/internal/adapters/out/kafka"
	"orderprocessing/internal/adapters/out/postgres"
	"orderprocessing/internal/core/application/usecases/commands"
	"orderprocessing/internal/core/application/usecases/queries"
	"orderprocessing/internal/core/domain/model/order"
	"orderprocessing/internal/jobs"
	"orderprocessing/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const kafkaWriteTimeout = 10 * time.Second

type CompositionRoot struct {
	config     Config
	rules      order.Rules
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *kafka.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. The Kafka publisher is only
// created when brokers are configured.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	rules, err := config.Rules()
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:     config,
		rules:      rules,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.EventsTopic()),
		metrics:    metrics.New(),
		logger:     logger,
	}

	if brokers := config.Brokers(); len(brokers) > 0 {
		root.publisher = kafka.NewPublisher(brokers, kafkaWriteTimeout)
	}

	return root, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.rules)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvancePendingOrdersCommandHandler() commands.AdvancePendingOrdersCommandHandler {
	return commands.NewAdvancePendingOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePublishOutboxMessagesCommandHandler() commands.PublishOutboxMessagesCommandHandler {
	return commands.NewPublishOutboxMessagesCommandHandler(c.outboxUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	changeStatus := c.CreateChangeOrderStatusCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()

	return httpadapter.NewServer(
		&createOrder,
		&changeStatus,
		&cancelOrder,
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
	)
}

// CreateRouter builds the echo instance. doc may be nil.
func (c *CompositionRoot) CreateRouter(doc *openapi3.T) *echo.Echo {
	return httpadapter.NewRouter(c.CreateHTTPServer(), httpadapter.RouterConfig{
		Logger:         c.logger,
		Metrics:        c.metrics,
		OpenAPI:        doc,
		SwaggerEnabled: c.config.SwaggerEnabled,
	})
}

// CreateJobManager builds the sweeper and, when Kafka is configured, the
// outbox relay.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	advance := c.CreateAdvancePendingOrdersCommandHandler()
	sweeper := jobs.NewPendingOrdersSweeperJob(&advance, c.config.SweeperInterval, c.metrics, c.logger)

	if c.publisher == nil {
		return jobs.NewJobManager(sweeper, nil), nil
	}

	publish := c.CreatePublishOutboxMessagesCommandHandler()
	relay, err := jobs.NewOutboxRelayJob(&publish, c.config.OutboxRelayInterval, c.config.OutboxBatchSize, c.metrics, c.logger)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(sweeper, relay), nil
}

// Close releases the Kafka writer.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
