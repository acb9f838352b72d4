package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"orderprocessing/internal/adapters/out/postgres/outboxrepo"
	"orderprocessing/internal/adapters/out/postgres/postgrestest"
	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/suite"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *outboxrepo.GormOutboxRepository
}

func TestOutboxRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.database = database
	suite.Require().NoError(err)
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.database.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) newMessage(occurredAt time.Time) *outbox.Message {
	m, err := outbox.NewMessage(
		kernel.NewUUID(),
		"orders.status-changed",
		kernel.NewUUID().String(),
		"order.status_changed",
		[]byte(`{"from":"Pending","to":"Processing"}`),
		occurredAt,
	)
	suite.Require().NoError(err)
	return m
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_GetUnsent_RoundTrip() {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	late := suite.newMessage(base.Add(time.Minute))
	early := suite.newMessage(base)

	suite.Require().NoError(suite.repository.Add(ctx, late, early))

	messages, err := suite.repository.GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)

	suite.True(messages[0].ID().IsEqual(early.ID()))
	suite.True(messages[1].ID().IsEqual(late.ID()))
	suite.Equal(early.Topic(), messages[0].Topic())
	suite.Equal(early.Key(), messages[0].Key())
	suite.Equal(early.EventName(), messages[0].EventName())
	suite.JSONEq(string(early.Payload()), string(messages[0].Payload()))
	suite.True(base.Equal(messages[0].OccurredAt()))
	suite.False(messages[0].IsSent())
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_Nothing() {
	suite.Require().NoError(suite.repository.Add(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_NotConstructedMessage() {
	err := suite.repository.Add(context.Background(), &outbox.Message{})

	suite.Require().ErrorIs(err, outbox.ErrMessageIsNotConstructed)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnsent_RespectsLimit() {
	ctx := context.Background()
	base := time.Now().UTC()
	for i := range 5 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newMessage(base.Add(time.Duration(i)*time.Second))))
	}

	messages, err := suite.repository.GetUnsent(ctx, 3)

	suite.Require().NoError(err)
	suite.Len(messages, 3)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkSent_HidesMessages() {
	ctx := context.Background()
	sent := suite.newMessage(time.Now().UTC())
	pending := suite.newMessage(time.Now().UTC().Add(time.Second))
	suite.Require().NoError(suite.repository.Add(ctx, sent, pending))

	suite.Require().NoError(suite.repository.MarkSent(ctx, time.Now(), sent))

	messages, err := suite.repository.GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 1)
	suite.True(messages[0].ID().IsEqual(pending.ID()))

	var row outboxrepo.MessageDTO
	suite.Require().NoError(suite.database.DB.First(&row, "id = ?", sent.ID().Bytes()).Error)
	suite.NotNil(row.SentAt)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnsent_SkipsLockedRows() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newMessage(time.Now().UTC())))

	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	locked, err := outboxrepo.NewGormOutboxRepository(tx).GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(locked, 1)

	other := suite.database.DB.Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()

	skipped, err := outboxrepo.NewGormOutboxRepository(other).GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(skipped)
}
