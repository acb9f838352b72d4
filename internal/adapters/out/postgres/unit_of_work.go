// Package postgres provides the GORM-based storage of the order processing
// service: connection set-up, schema migrations and the Unit of Work that
// ties the order and outbox repositories to one transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, "orders.status-changed")
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // also stores o's status change events
//
// Each UnitOfWork instance owns one transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"

	"orderprocessing/internal/adapters/out/postgres/orderrepo"
	"orderprocessing/internal/adapters/out/postgres/outboxrepo"
	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/outbox"
	"orderprocessing/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

var _ ports.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	eventsTopic string
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// When eventsTopic is empty, recorded domain events are dropped on commit
// instead of being written to the outbox.
func NewGormUnitOfWorkFactory(db *gorm.DB, eventsTopic string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, eventsTopic: eventsTopic}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		eventsTopic:       f.eventsTopic,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates saved in it, so their domain events can be written to the
// outbox atomically with the state change.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	eventsTopic       string
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is
// open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit writes one outbox message per recorded domain event, then commits.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources := uow.eventSources()

	messages, err := uow.outboxMessages(sources)
	if err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, messages...); err != nil {
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, source := range sources {
		source.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction and everything tracked in it.
// Returns gorm.ErrInvalidTransaction if no transaction is open, which is
// the normal case for a deferred Rollback after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the open transaction,
// or to the connection pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OutboxRepository returns an outbox repository bound to the open transaction,
// or to the connection pool when none is open.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// eventSources returns each tracked aggregate once, in tracking order.
func (uow *GormUnitOfWork) eventSources() []eventSource {
	seen := make(map[eventSource]struct{}, len(uow.trackedAggregates))
	sources := make([]eventSource, 0, len(uow.trackedAggregates))

	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if _, dup := seen[source]; dup {
			continue
		}
		seen[source] = struct{}{}
		sources = append(sources, source)
	}

	return sources
}

func (uow *GormUnitOfWork) outboxMessages(sources []eventSource) ([]*outbox.Message, error) {
	if uow.eventsTopic == "" {
		return nil, nil
	}

	var messages []*outbox.Message
	for _, source := range sources {
		for _, event := range source.DomainEvents() {
			m, err := newStatusChangedMessage(uow.eventsTopic, event)
			if err != nil {
				return nil, err
			}
			messages = append(messages, m)
		}
	}

	return messages, nil
}
