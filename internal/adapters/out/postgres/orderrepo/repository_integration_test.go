package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderprocessing/internal/adapters/out/postgres/orderrepo"
	"orderprocessing/internal/adapters/out/postgres/postgrestest"
	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/order"
	"orderprocessing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite checks order persistence against a
// real PostgreSQL schema created by the migrations.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	rules      order.Rules
}

func TestOrderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.database = database
	suite.Require().NoError(err)

	suite.rules, err = order.NewRules(100, 10)
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(lines ...order.Line) *order.Order {
	if len(lines) == 0 {
		lines = []order.Line{{ProductName: "Laptop", Quantity: 1, Price: decimal.NewFromInt(50000)}}
	}
	o, err := order.NewOrder(suite.rules, lines)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderAndItems() {
	ctx := context.Background()
	testOrder := suite.newOrder(
		order.Line{ProductName: "Laptop", Quantity: 1, Price: decimal.RequireFromString("50000.00")},
		order.Line{ProductName: "Mouse", Quantity: 2, Price: decimal.RequireFromString("19.99")},
		order.Line{ProductName: "Cable", Quantity: 5, Price: decimal.RequireFromString("0.5")},
	)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", testOrder.ID(), testOrder)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.WithinDuration(testOrder.CreatedAt(), loaded.CreatedAt(), time.Millisecond)
	suite.Equal(time.UTC, loaded.CreatedAt().Location())

	original := testOrder.Items()
	items := loaded.Items()
	suite.Require().Len(items, 3)
	for i := range items {
		suite.True(original[i].ID().IsEqual(items[i].ID()))
		suite.Equal(original[i].ProductName(), items[i].ProductName())
		suite.Equal(original[i].Quantity(), items[i].Quantity())
		suite.True(original[i].Price().Equal(items[i].Price()), "price %s", items[i].Price())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	testOrder := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().Error(suite.repository.Add(ctx, testOrder))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	id := kernel.NewUUID()

	loaded, err := suite.repository.Get(context.Background(), id)

	suite.Nil(loaded)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal(id.String(), notFound.ID)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesStatus() {
	ctx := context.Background()
	testOrder := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Processing))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, loaded.Status())
	suite.Len(loaded.Items(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	err := suite.repository.Update(context.Background(), suite.newOrder())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_And_UpdateAll() {
	ctx := context.Background()
	first := suite.newOrder()
	second := suite.newOrder()
	shipped := suite.newOrder()
	for _, o := range []*order.Order{first, second, shipped} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(shipped.ChangeStatus(order.Processing))
	suite.Require().NoError(shipped.ChangeStatus(order.Shipped))
	suite.Require().NoError(suite.repository.Update(ctx, shipped))

	pending, err := suite.repository.GetAllInStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.ElementsMatch(
		[]string{first.ID().String(), second.ID().String()},
		[]string{pending[0].ID().String(), pending[1].ID().String()},
	)
	suite.False(pending[1].CreatedAt().Before(pending[0].CreatedAt()))

	for _, o := range pending {
		suite.Require().NoError(o.ChangeStatus(order.Processing))
	}
	suite.Require().NoError(suite.repository.UpdateAll(ctx, pending))

	pending, err = suite.repository.GetAllInStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Empty(pending)

	processing, err := suite.repository.GetAllInStatus(ctx, order.Processing)
	suite.Require().NoError(err)
	suite.Len(processing, 2)

	stillShipped, err := suite.repository.Get(ctx, shipped.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, stillShipped.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateAll_Empty() {
	suite.Require().NoError(suite.repository.UpdateAll(context.Background(), nil))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_InvalidStatus() {
	_, err := suite.repository.GetAllInStatus(context.Background(), order.Unknown)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_LocksRowInTransaction() {
	ctx := context.Background()
	testOrder := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	_, err := orderrepo.NewGormOrderRepository(tx, suite.tracker).Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	other := suite.database.DB.Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()

	err = other.Exec("SELECT id FROM orders WHERE id = ? FOR UPDATE NOWAIT", testOrder.ID().Bytes()).Error
	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_SweepWinsOverConcurrentCancel() {
	ctx := context.Background()
	pending := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	sweep := suite.database.DB.Begin()
	suite.Require().NoError(sweep.Error)
	defer sweep.Rollback()
	sweepRepo := orderrepo.NewGormOrderRepository(sweep, suite.tracker)

	loaded, err := sweepRepo.GetAllInStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 1)

	other := suite.database.DB.Begin()
	suite.Require().NoError(other.Error)
	err = other.Exec("SELECT id FROM orders WHERE id = ? FOR UPDATE NOWAIT", pending.ID().Bytes()).Error
	suite.Require().Error(err)
	other.Rollback()

	cancelled := make(chan error, 1)
	go func() {
		cancelled <- suite.database.DB.Transaction(func(tx *gorm.DB) error {
			repo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
			o, err := repo.Get(ctx, pending.ID())
			if err != nil {
				return err
			}
			if err = o.Cancel(); err != nil {
				return err
			}
			return repo.Update(ctx, o)
		})
	}()

	suite.Require().NoError(loaded[0].ChangeStatus(order.Processing))
	suite.Require().NoError(sweepRepo.UpdateAll(ctx, loaded))
	suite.Require().NoError(sweep.Commit().Error)

	select {
	case err = <-cancelled:
		suite.Require().ErrorIs(err, order.ErrTransitionRejected)
	case <-time.After(10 * time.Second):
		suite.FailNow("cancel did not finish")
	}

	stored, err := suite.repository.Get(ctx, pending.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, stored.Status())
}
