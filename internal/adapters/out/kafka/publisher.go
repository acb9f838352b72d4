// Package kafka publishes outbox messages to Kafka topics.
package kafka

import (
	"context"
	"strings"
	"time"

	"orderprocessing/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event_type"

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher on top of a kafka-go writer.
// The topic is taken from each message, so one publisher serves every topic.
type Publisher struct {
	writer messageWriter
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewPublisher creates a publisher writing to brokers. Messages are
// balanced by key hash so one order's events keep their order.
func NewPublisher(brokers []string, writeTimeout time.Duration) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	})
}

func newPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes messages in one batch. Either the whole batch is
// acknowledged or an error is returned and the caller may retry all of it.
func (p *Publisher) Publish(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
		batch = append(batch, toKafkaMessage(m))
	}

	return p.writer.WriteMessages(ctx, batch...)
}

// Close flushes pending writes and releases connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(m *outbox.Message) kafka.Message {
	return kafka.Message{
		Topic: m.Topic(),
		Key:   []byte(m.Key()),
		Value: m.Payload(),
		Time:  m.OccurredAt(),
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(m.EventName())},
		},
	}
}
